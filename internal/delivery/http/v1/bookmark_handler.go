package v1

import (
	"net/http"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct {
	bookmarkUC domain.BookmarkUsecase
}

func NewBookmarkHandler(r *gin.RouterGroup, bookmarkUC domain.BookmarkUsecase) {
	handler := &BookmarkHandler{bookmarkUC: bookmarkUC}

	bookmarks := r.Group("/bookmarks")
	{
		bookmarks.POST("", handler.Add)
		bookmarks.DELETE("", handler.Remove)
		bookmarks.GET("/check", handler.Check)
	}

	r.GET("/users/:id/bookmarks", handler.ListByUser)
}

type BookmarkRequest struct {
	UserID int64 `json:"userId" binding:"required,gt=0"`
	JobID  int64 `json:"jobId" binding:"required,gt=0"`
}

// AddBookmark godoc
// @Summary      Bookmark a job
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      BookmarkRequest  true  "User and job"
// @Success      201   {object}  response.Response{data=domain.Bookmark}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /bookmarks [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	var req BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	bookmark, err := h.bookmarkUC.AddBookmark(c.Request.Context(), domain.BookmarkInput{UserID: req.UserID, JobID: req.JobID})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job bookmarked", bookmark)
}

// RemoveBookmark godoc
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      BookmarkRequest  true  "User and job"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /bookmarks [delete]
func (h *BookmarkHandler) Remove(c *gin.Context) {
	var req BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.bookmarkUC.RemoveBookmark(c.Request.Context(), req.UserID, req.JobID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmark removed", nil)
}

// CheckBookmark godoc
// @Summary      Is a job bookmarked
// @Tags         bookmarks
// @Produce      json
// @Param        userId  query     int  true  "User ID"
// @Param        jobId   query     int  true  "Job ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /bookmarks/check [get]
func (h *BookmarkHandler) Check(c *gin.Context) {
	userID, ok := queryID(c, "userId")
	if !ok {
		return
	}
	jobID, ok := queryID(c, "jobId")
	if !ok {
		return
	}

	bookmarked, err := h.bookmarkUC.IsBookmarked(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmark status retrieved", gin.H{"bookmarked": bookmarked})
}

// ListUserBookmarks godoc
// @Summary      Bookmarks of a user
// @Tags         bookmarks
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response{data=[]domain.Bookmark}
// @Router       /users/{id}/bookmarks [get]
func (h *BookmarkHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookmarks, err := h.bookmarkUC.ListBookmarks(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmarks retrieved", bookmarks)
}
