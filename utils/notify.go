package utils

import (
	"encoding/json"
	"log"

	"lms/database"
	"lms/models"

	"gorm.io/datatypes"
)

// Notify writes an in-app notification for a user. The data map is stored as a
// JSON payload the client uses to deep-link (order id, ticket id, ...).
func Notify(userID uint, notificationType, title, message string, data map[string]interface{}) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Printf("Error marshalling notification data for user %d: %v", userID, err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification for user %d: %v", userID, err)
	}
}
