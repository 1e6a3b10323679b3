package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/Domenick1991/wanderlust/internal/service/listings"
	"github.com/Domenick1991/wanderlust/internal/service/reviews"
	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listings listings.ListingUseCase
	reviews  reviews.ReviewUseCase
}

type listingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       int64  `json:"price"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	Category    string `json:"category"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewResponse struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	AuthorID  int64  `json:"authorId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

type listingResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Price       int64            `json:"price"`
	Location    string           `json:"location"`
	Country     string           `json:"country"`
	Category    string           `json:"category,omitempty"`
	OwnerID     int64            `json:"ownerId"`
	Owner       string           `json:"owner"`
	Geometry    *domain.Geometry `json:"geometry,omitempty"`
	Reviews     []reviewResponse `json:"reviews,omitempty"`
}

func NewListingHandler(listingService listings.ListingUseCase, reviewService reviews.ReviewUseCase) *ListingHandler {
	return &ListingHandler{listings: listingService, reviews: reviewService}
}

func (h *ListingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.POST("/:id/reviews", h.createReview)
	router.DELETE("/:id/reviews/:reviewId", h.deleteReview)
}

func (r listingRequest) input() listings.ListingInput {
	return listings.ListingInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.Image,
		Price:       r.Price,
		Location:    r.Location,
		Country:     r.Country,
		Category:    r.Category,
	}
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Author:    r.AuthorUsername,
		AuthorID:  r.AuthorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

func toListingResponse(l *domain.Listing) listingResponse {
	resp := listingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Image:       l.ImageURL,
		Price:       l.Price,
		Location:    l.Location,
		Country:     l.Country,
		Category:    l.Category,
		OwnerID:     l.OwnerID,
		Owner:       l.OwnerUsername,
		Geometry:    l.Geometry,
	}
	for i := range l.Reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(&l.Reviews[i]))
	}
	return resp
}

// list godoc
// @Summary  List listings
// @Tags     listings
// @Produce  json
// @Param    category query string false "category, 'all' for any"
// @Param    search   query string false "country search"
// @Success  200 {array} listingResponse
// @Router   /api/listings [get]
func (h *ListingHandler) list(c *gin.Context) {
	result, err := h.listings.List(c.Request.Context(), listings.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]listingResponse, 0, len(result))
	for i := range result {
		out = append(out, toListingResponse(&result[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ListingHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) create(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid listing")
		return
	}
	listing, err := h.listings.Create(c.Request.Context(), identity(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(listing))
}

func (h *ListingHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid listing")
		return
	}
	listing, err := h.listings.Update(c.Request.Context(), identity(c), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h *ListingHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.listings.Delete(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Listing deleted"})
}

func (h *ListingHandler) createReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid review")
		return
	}
	review, err := h.reviews.Create(c.Request.Context(), identity(c), id, reviews.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(review))
}

func (h *ListingHandler) deleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "reviewId")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), identity(c), id, reviewID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted"})
}
