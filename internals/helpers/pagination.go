package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

// PerPageOptions is the closed set of page sizes a list may be asked for.
var PerPageOptions = []int{10, 15, 25, 50}

type Params struct {
	Page    int
	PerPage int
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// NormalizePaging clamps page to >= 1 and falls back to DefaultPerPage
// for any per_page outside PerPageOptions.
func NormalizePaging(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if !AllowedPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

func AllowedPerPage(n int) bool {
	for _, o := range PerPageOptions {
		if o == n {
			return true
		}
	}
	return false
}

// ParseFiber reads ?page= and ?per_page= (alias ?limit=).
func ParseFiber(c *fiber.Ctx) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	per := atoiDefault(firstNonEmpty(c.Query("per_page"), c.Query("limit")), DefaultPerPage)
	return NormalizePaging(page, per)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
