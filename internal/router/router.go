package router

import (
	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/config"
	"github.com/app789plates/plates-backend/internal/app/controller"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type Router struct {
	plateController    *controller.PlateController
	searchController   *controller.SearchController
	socialController   *controller.SocialController
	storeController    *controller.StoreController
	transferController *controller.TransferController
	ratingController   *controller.RatingController
	hashtagController  *controller.HashtagController
	patternController  *controller.PatternController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	plateController *controller.PlateController,
	searchController *controller.SearchController,
	socialController *controller.SocialController,
	storeController *controller.StoreController,
	transferController *controller.TransferController,
	ratingController *controller.RatingController,
	hashtagController *controller.HashtagController,
	patternController *controller.PatternController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		plateController:    plateController,
		searchController:   searchController,
		socialController:   socialController,
		storeController:    storeController,
		transferController: transferController,
		ratingController:   ratingController,
		hashtagController:  hashtagController,
		patternController:  patternController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "789PLATES API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		plates := v1.Group("/plates")
		{
			plates.GET("/:id/hashtags", r.hashtagController.GetPlateHashtags)

			plates.Use(r.authMiddleware.Authenticate())
			plates.POST("", r.plateController.CreatePlate)
			plates.GET("/me", r.plateController.GetMyPlates)
			plates.POST("/:id/price", r.plateController.AddPrice)
			plates.PUT("/:id/information", r.plateController.UpdateInformation)
			plates.PUT("/:id/selling", r.plateController.UpdateSelling)
			plates.PUT("/:id/total", r.plateController.UpdateTotal)
			plates.PUT("/:id/pin", r.plateController.UpdatePin)
			plates.DELETE("/:id", r.plateController.DeletePlate)
			plates.POST("/:id/hashtags", r.hashtagController.AttachHashtag)
			plates.DELETE("/:id/hashtags/:hashtag_id", r.hashtagController.DetachHashtag)
		}

		search := v1.Group("/search")
		search.Use(r.authMiddleware.OptionalAuthenticate())
		{
			search.GET("/plates", r.searchController.SearchPlates)
			search.GET("/plates/:id", r.searchController.GetPlateDetail)
			search.GET("/category/:category", r.searchController.SearchByCategory)
			search.GET("/fronts", r.searchController.BrowseFrontTags)
			search.GET("/plates-type/:id", r.searchController.SearchByPlatesType)
			search.GET("/vehicle-type/:id", r.searchController.SearchByVehicleType)
		}

		stores := v1.Group("/stores")
		{
			stores.GET("", r.storeController.SearchStores)
			stores.GET("/:id", r.storeController.GetStoreByID)
			stores.GET("/:id/ratings", r.ratingController.GetStoreRatings)
			stores.POST("/:id/ratings",
				r.authMiddleware.Authenticate(),
				r.ratingController.RateStore,
			)
		}

		ratings := v1.Group("/ratings")
		ratings.Use(r.authMiddleware.Authenticate())
		{
			ratings.DELETE("/:id", r.ratingController.DeleteRating)
		}

		social := v1.Group("/social")
		social.Use(r.authMiddleware.Authenticate())
		{
			social.GET("/me", r.socialController.GetReactions)
			social.POST("/plates/:plates_id/like", r.socialController.LikePlate)
			social.DELETE("/plates/:plates_id/like", r.socialController.UnlikePlate)
			social.POST("/plates/:plates_id/save", r.socialController.SavePlate)
			social.DELETE("/plates/:plates_id/save", r.socialController.UnsavePlate)
			social.POST("/stores/:store_id/like", r.socialController.LikeStore)
			social.DELETE("/stores/:store_id/like", r.socialController.UnlikeStore)
			social.POST("/stores/:store_id/save", r.socialController.SaveStore)
			social.DELETE("/stores/:store_id/save", r.socialController.UnsaveStore)
		}

		transfers := v1.Group("/transfers")
		transfers.Use(r.authMiddleware.Authenticate())
		{
			transfers.GET("", r.transferController.GetTransfers)
			transfers.POST("", r.transferController.OfferTransfer)
			transfers.PUT("/:id/accept", r.transferController.AcceptTransfer)
			transfers.DELETE("/:id", r.transferController.RetractTransfer)
		}

		hashtags := v1.Group("/hashtags")
		{
			hashtags.GET("/:tag/plates", r.hashtagController.GetPlatesByTag)
		}

		patterns := v1.Group("/patterns")
		{
			patterns.GET("", r.patternController.GetCategories)
			patterns.GET("/:category/count", r.patternController.GetCategoryCount)
			patterns.POST("/reclassify",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.patternController.ReclassifyAll,
			)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/plate-photo", r.uploadController.PresignPlatePhoto)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
