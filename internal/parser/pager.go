package parser

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"

	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// LastPageIndex finds the zero-based index carried by the "last page"
// pager link, located with an XPath expression. It returns
// types.ErrNoLastPage when no matching link exposes a page number.
func LastPageIndex(resp *types.Response, xpathExpr string) (int, error) {
	doc, err := resp.Node()
	if err != nil {
		return 0, &types.ParseError{URL: resp.Request.URLString(), Err: err}
	}

	nodes, err := htmlquery.QueryAll(doc, xpathExpr)
	if err != nil {
		return 0, &types.ParseError{URL: resp.Request.URLString(), Selector: xpathExpr, Err: err}
	}

	for _, node := range nodes {
		if idx, ok := pageFromHref(htmlquery.SelectAttr(node, "href")); ok {
			return idx, nil
		}
	}
	return 0, types.ErrNoLastPage
}

// pageFromHref reads the "page" query parameter of a pager href such as
// "?page=12" or "/dashboard?sort=date&page=12".
func pageFromHref(href string) (int, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return 0, false
	}
	u, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	idx, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
