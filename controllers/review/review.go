package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bilal-Yasir34/apex-store/reviews"
)

type ReviewInput struct {
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// GET /products/:id/reviews
func GetReviews(svc *reviews.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		list, err := svc.Fetch(c.Request.Context(), productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /products/:id/reviews
func CreateReview(svc *reviews.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Signed-in authors get attributed; anonymous reviews are fine too.
		var userID *string
		if val, exists := c.Get("user_id"); exists {
			if id, ok := val.(string); ok && id != "" {
				userID = &id
			}
		}

		review, err := svc.Submit(c.Request.Context(), productID, input.UserName, input.Rating, input.Comment, userID)
		if err != nil {
			if errors.Is(err, reviews.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post review. Try again."})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// DELETE /reviews/:reviewID
func DeleteReview(svc *reviews.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("reviewID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
			return
		}

		if err := svc.Delete(c.Request.Context(), uint(id)); err != nil {
			if errors.Is(err, reviews.ErrReviewNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
