package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pie-314/trx/errors"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/searcher"
	pkgErrors "github.com/pkg/errors"
)

type searchResponse struct {
	Query   string
	Results []searcher.Result
	Errors  errors.Errors
}

func searchPackages(s *searcher.Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if limitQuery, ok := c.GetQuery("limit"); ok {
			parsed, err := strconv.Atoi(limitQuery)
			if err != nil || parsed < 1 {
				abortWithClientError(c, http.StatusBadRequest, pkgErrors.Errorf("Limit must be a positive integer: %q", limitQuery))
				return
			}
			limit = parsed
		}

		results := s.Search(c.Request.Context(), c.Query("q"))
		if limit > 0 && len(results.Packages) > limit {
			results.Packages = results.Packages[:limit]
		}
		errs := errors.Errors{}
		errs.AddErr(results.Err)
		c.JSON(http.StatusOK, searchResponse{
			Query:   results.Query,
			Results: results.Packages,
			Errors:  errs,
		})
	}
}

func getPackage(providers provider.Registry, details *provider.DetailsCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, found := providers.Find(c.Param("provider"))
		if !found {
			abortWithClientError(c, http.StatusNotFound, pkgErrors.Errorf("Unknown provider: %q", c.Param("provider")))
			return
		}
		d, err := details.Details(c.Request.Context(), p, c.Param("name"))
		if err != nil {
			abortWithClientError(c, http.StatusBadGateway, errors.NewProviderError(p.Name(), err))
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
