package handler

import (
	"net/http"

	"github.com/AdnanSameer1724/careers-page-builder/internal/database"
	"github.com/AdnanSameer1724/careers-page-builder/internal/middleware"
	"github.com/AdnanSameer1724/careers-page-builder/internal/server"
	"github.com/AdnanSameer1724/careers-page-builder/internal/user"
)

// TriggerCleanupHandler runs the periodic maintenance tasks: expired sign on
// tokens and images no longer referenced by any company.
func TriggerCleanupHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return middleware.MachineAuthenticatedMiddleware(
		svr.GetConfig().MachineToken,
		func(w http.ResponseWriter, r *http.Request) {
			go func() {
				if err := userRepo.DeleteExpiredUserSignOnTokens(); err != nil {
					svr.Log(err, "userRepo.DeleteExpiredUserSignOnTokens")
				}
				if err := database.DeleteStaleImages(svr.Conn); err != nil {
					svr.Log(err, "database.DeleteStaleImages")
				}
			}()
			svr.JSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
		},
	)
}
