// Package scraper reads products from published supermarket receipt pages.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"super-control/internal/domain"
)

const (
	rowClass   = "font table-full-alt"
	cellClass  = "center"
	maxPageLen = 5 << 20
)

// Config tunes the receipt scraper.
type Config struct {
	Timeout time.Duration
	Client  *http.Client
	Logger  *logrus.Logger
}

// ReceiptScraper downloads receipt pages and extracts their product rows.
type ReceiptScraper struct {
	client *http.Client
	logger *logrus.Logger
}

func NewReceiptScraper(cfg Config) *ReceiptScraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &ReceiptScraper{
		client: cfg.Client,
		logger: cfg.Logger,
	}
}

// Fetch downloads receiptURL and parses its product table.
func (s *ReceiptScraper) Fetch(ctx context.Context, receiptURL string) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, receiptURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build receipt request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch receipt: unexpected status %d", resp.StatusCode)
	}

	products, err := Parse(io.LimitReader(resp.Body, maxPageLen))
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"url":      receiptURL,
		"products": len(products),
	}).Debug("receipt scraped")
	return products, nil
}

// Parse extracts products from a receipt document. Every
// <tr class="font table-full-alt"> row yields one product: the first <div>
// holds the description, the first two <div class="center"> cells hold units
// and price. Rows without those cells are skipped.
func Parse(r io.Reader) ([]domain.Product, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse receipt html: %w", err)
	}

	products := []domain.Product{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" && hasClass(n, rowClass) {
			if p, ok := parseRow(n); ok {
				products = append(products, p)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return products, nil
}

func parseRow(row *html.Node) (domain.Product, bool) {
	var (
		description string
		found       bool
		cells       []string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			if !found {
				description = textOf(n)
				found = true
			}
			if hasClass(n, cellClass) {
				cells = append(cells, textOf(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(row)

	if !found || description == "" || len(cells) < 2 {
		return domain.Product{}, false
	}
	units, err := parseNumber(cells[0])
	if err != nil {
		return domain.Product{}, false
	}
	price, err := parseNumber(cells[1])
	if err != nil {
		return domain.Product{}, false
	}

	return domain.Product{
		Name:        description,
		Description: description,
		Units:       units,
		Price:       price,
	}, true
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Join(strings.Fields(attr.Val), " ") == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// parseNumber accepts "1.234,50", "1234.50", "$ 12,5" and "3 UN".
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}
