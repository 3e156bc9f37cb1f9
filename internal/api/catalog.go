package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"betpool/internal/catalog"
)

// ListPlansHandler returns storefront plans, optionally by ?category=.
func ListPlansHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"plans": cat.Plans(c.Query("category"))})
	}
}

// PlanHandoffHandler builds the messaging deep link for a plan. The client
// opens it; nothing is awaited or parsed.
func PlanHandoffHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, err := cat.Find(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		action := catalog.ActionHire
		if c.Query("action") == catalog.ActionRenew {
			action = catalog.ActionRenew
		}
		c.JSON(http.StatusOK, gin.H{"url": cat.HandoffURL(plan, action)})
	}
}
