package server

import (
	handler "ebuy/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService handler.BiddingServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	biddingHandler := handler.NewBiddingHandler(biddingService)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", biddingHandler.ListAuctionsHandler)
		auctions.POST("", biddingHandler.CreateAuctionHandler)
		auctions.GET("/:slug", biddingHandler.GetAuctionHandler)
		auctions.GET("/:slug/bids", biddingHandler.GetBidsHandler)
		auctions.POST("/:slug/bids", biddingHandler.PlaceBidHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/auctions", biddingHandler.GetAuctionsByUserHandler)
	}

	return router
}
