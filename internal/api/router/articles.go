package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type ArticlesRouter struct {
	e         *echo.Echo
	reader    storage.Reader
	paginator *pagination.Paginator[domain.Article, domain.ArticleKey]
}

func NewArticlesRouter(e *echo.Echo, reader storage.Reader) *ArticlesRouter {
	return &ArticlesRouter{
		e:         e,
		reader:    reader,
		paginator: domain.NewArticlePaginator(),
	}
}

func (r *ArticlesRouter) Bind() {
	r.e.GET("/articles", r.listHandler)
}

// listHandler serves GET /articles?cursor=&limit=. Validation failures
// reach the error handler as *pagination.ValidationError.
func (r *ArticlesRouter) listHandler(c echo.Context) error {
	params := pagination.ParamsFromQuery(c.QueryParams())
	route := pagination.LinkBuilder{BasePath: c.Request().URL.Path}

	res, err := r.paginator.Paginate(c.Request().Context(), params, route, storage.Fetcher(r.reader))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
