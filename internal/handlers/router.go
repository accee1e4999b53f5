package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AptiPro-2025/exam-session-service/internal/services"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

type HandlerManager struct {
	sessionHandler *SessionHandler
	resultHandler  *ResultHandler
	accountHandler *AccountHandler
}

func NewHandlerManager(
	sessionService services.SessionService,
	resultService services.ResultService,
	accountService services.AccountService,
	reportService services.ReportService,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler: NewSessionHandler(sessionService, validator, logger),
		resultHandler:  NewResultHandler(resultService, reportService, logger),
		accountHandler: NewAccountHandler(accountService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "exam-session-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Account routes
		accounts := v1.Group("/accounts")
		{
			accounts.POST("/signup", hm.accountHandler.Signup)
			accounts.GET("/:email/profile", hm.accountHandler.GetProfile)
			accounts.PUT("/:email/profile", hm.accountHandler.SaveProfile)
			accounts.GET("/:email/performance", hm.resultHandler.GetPerformance)
		}

		// Test catalog
		v1.GET("/tests", hm.sessionHandler.ListTests)

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.OpenSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/answers", hm.sessionHandler.SelectAnswer)
			sessions.POST("/:id/navigation", hm.sessionHandler.Navigate)
			sessions.POST("/:id/submit", hm.sessionHandler.SubmitSession)
			sessions.DELETE("/:id", hm.sessionHandler.CloseSession)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.GET("", hm.resultHandler.ListResults)
			results.POST("/view", hm.resultHandler.ViewResult)
		}

		// Report export
		v1.GET("/reports/:email", hm.resultHandler.DownloadReport)
	}
}
