package controllers

import (
	"errors"
	"log"
	"net/http"

	"manuscript-review-api/config"
	"manuscript-review-api/services"

	"github.com/gin-gonic/gin"
)

// currentActor pulls the authenticated caller out of the gin context as
// resolved by the auth middleware.
func currentActor(c *gin.Context) (services.Actor, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		return services.Actor{}, false
	}
	userID, ok := userIDValue.(int)
	if !ok {
		return services.Actor{}, false
	}

	roleIDValue, exists := c.Get("roleID")
	if !exists {
		return services.Actor{}, false
	}
	roleID, ok := roleIDValue.(int)
	if !ok {
		return services.Actor{}, false
	}

	return services.Actor{UserID: userID, RoleID: roleID}, true
}

func mustActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
	}
	return actor, ok
}

// respondWorkflowError maps a workflow rejection to its HTTP status and
// JSON body; anything else is an internal fault.
func respondWorkflowError(c *gin.Context, err error) {
	var wfErr *services.WorkflowError
	if errors.As(err, &wfErr) {
		body := gin.H{
			"success": false,
			"kind":    wfErr.Kind,
			"error":   wfErr.Message,
		}
		if len(wfErr.Fields) > 0 {
			body["fields"] = wfErr.Fields
		}
		c.JSON(wfErr.HTTPStatus(), body)
		return
	}

	log.Printf("workflow operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
}

func newEngine() *services.WorkflowEngine {
	return services.NewWorkflowEngine(config.DB, services.NewNotificationService(config.DB))
}
