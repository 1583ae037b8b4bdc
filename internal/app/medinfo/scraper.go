package medinfo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const (
	antaiBaseURL  = "https://www.antai.tw/medicine_list.asp"
	scraperUA     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36"
	scrapeTimeout = 15 * time.Second
)

// Scraper queries the hospital's public medicine list page.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// NewScraper creates a Scraper with the default endpoint and timeout.
func NewScraper() *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: scrapeTimeout},
		baseURL: antaiBaseURL,
	}
}

// Search looks the keyword up on the medicine list page and returns the
// first matching row, or (nil, nil) when nothing matches.
func (s *Scraper) Search(ctx context.Context, keyword string) (*model.MedicationInfo, error) {
	// Compound names carry dosage after the first space.
	keyword = strings.SplitN(strings.TrimSpace(keyword), " ", 2)[0]
	if keyword == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?tkeyword=%s", s.baseURL, url.QueryEscape(keyword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUA)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("medicine list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("medicine list returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse medicine list page: %w", err)
	}

	rows := doc.Find("tr.style_10")
	if rows.Length() == 0 {
		return nil, nil
	}

	// First row is the most relevant match.
	columns := rows.First().Find("td")
	if columns.Length() < 5 {
		return nil, fmt.Errorf("unexpected medicine list row layout")
	}

	imageURL := placeholderImageURL
	if src, ok := columns.Eq(0).Find("img").Attr("src"); ok {
		imageURL = "https://www.antai.tw/" + src
	}

	name := strings.TrimSpace(columns.Eq(1).Text())
	sideEffects := strings.TrimSpace(columns.Eq(4).Text())
	if sideEffects == "" {
		sideEffects = "查無此藥品的副作用資訊。"
	}

	return &model.MedicationInfo{
		Name:        name,
		ImageURL:    imageURL,
		SideEffects: sideEffects,
	}, nil
}
