package client

import (
	"fmt"
	"strconv"

	"github.com/yosida95/uritemplate/v3"
)

// Endpoint URLs are built with RFC 6570 templates rather than string
// concatenation: simple expansion percent-encodes every reserved character in
// index names, property names and values ("/", "?", spaces), which would
// otherwise corrupt the path. The {+base} operator keeps the already-complete
// base URL intact.
var (
	indexLookupTemplate = uritemplate.MustNew("{+base}/{index}/{property}/{value}")
	indexQueryTemplate  = uritemplate.MustNew("{+base}/{index}{?query}")
	collectionTemplate  = uritemplate.MustNew("{+base}/{id}")
)

func indexLookupURL(base, index, property, value string) (string, error) {
	u, err := indexLookupTemplate.Expand(uritemplate.Values{
		"base":     uritemplate.String(base),
		"index":    uritemplate.String(index),
		"property": uritemplate.String(property),
		"value":    uritemplate.String(value),
	})
	if err != nil {
		return "", fmt.Errorf("build index lookup URL: %w", err)
	}
	return u, nil
}

func indexQueryURL(base, index, query string) (string, error) {
	u, err := indexQueryTemplate.Expand(uritemplate.Values{
		"base":  uritemplate.String(base),
		"index": uritemplate.String(index),
		"query": uritemplate.String(query),
	})
	if err != nil {
		return "", fmt.Errorf("build index query URL: %w", err)
	}
	return u, nil
}

func entityByIDURL(base string, id int64) (string, error) {
	u, err := collectionTemplate.Expand(uritemplate.Values{
		"base": uritemplate.String(base),
		"id":   uritemplate.String(strconv.FormatInt(id, 10)),
	})
	if err != nil {
		return "", fmt.Errorf("build entity URL: %w", err)
	}
	return u, nil
}
