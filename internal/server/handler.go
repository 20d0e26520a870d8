package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/coelho/internal/resolver"
)

// Resolver is the part of the resolution pipeline the handlers need.
type Resolver interface {
	Resolve(ctx context.Context, isbn string) (*resolver.Resolution, error)
}

type Handler struct {
	Resolver Resolver
}

func NewHandler(r Resolver) *Handler {
	return &Handler{Resolver: r}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search/isbn", h.search) // GET /search/isbn?q=
	rg.GET("/isbn/search", h.search) // GET /isbn/search?q=
}

func (h *Handler) search(c *gin.Context) {
	res, err := h.Resolver.Resolve(c.Request.Context(), c.Query("q"))
	if err != nil {
		body := gin.H{
			"ok":     false,
			"result": errorDetail(err),
			"when":   resolver.StepOf(err),
		}
		// Only a failed cache write comes back with a resolved record.
		if res != nil && res.Record != nil {
			body["record"] = res.Record
		}
		c.JSON(statusFor(err), body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"cached": res.Cached,
		"result": res.Record,
	})
}

func statusFor(err error) int {
	kind, _ := resolver.KindOf(err)
	switch kind {
	case resolver.KindInvalidInput:
		return http.StatusBadRequest
	case resolver.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail is the message without the step prefix, which goes in "when".
func errorDetail(err error) string {
	var rerr *resolver.Error
	if errors.As(err, &rerr) && rerr.Err != nil {
		return rerr.Err.Error()
	}
	return err.Error()
}
