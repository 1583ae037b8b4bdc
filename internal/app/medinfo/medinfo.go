// Package medinfo resolves medication codes to drug reference records. A
// small local table covers the codes the clinic dispenses; everything else
// falls back to scraping the hospital's public medicine list.
package medinfo

import (
	"context"
	"strings"

	"github.com/willyyyaj/medical-system/internal/app/model"
)

const placeholderImageURL = "https://via.placeholder.com/100x100.png?text=No+Image"

// localMedications is the in-house reference table keyed by medication code.
var localMedications = map[string]model.MedicationInfo{
	"A048123100": {
		Name:        "PANADOL 500MG (ACETAMINOPHEN)",
		SideEffects: "身體部位症狀 皮膚發疹、脫屑、發癢、發紅 消化器官噁心、嘔吐、食慾不振 神經系統頭暈、耳鳴 其他口腔潰瘍、未預期創傷或出血。",
	},
}

// unknownMedication is returned when neither the local table nor the
// scraper knows the code.
var unknownMedication = model.MedicationInfo{
	Name:        "未知藥品",
	ImageURL:    placeholderImageURL,
	SideEffects: "查無此藥品的副作用資訊。",
}

// Source provides medication records by code.
type Source struct {
	scraper *Scraper
}

// NewSource creates a Source. scraper may be nil to disable the fallback.
func NewSource(scraper *Scraper) *Source {
	return &Source{scraper: scraper}
}

// Lookup resolves a medication code: local table first, then the hospital
// site scraper, then the unknown-medication placeholder.
func (s *Source) Lookup(ctx context.Context, code string) model.MedicationInfo {
	code = strings.TrimSpace(code)

	if info, ok := localMedications[code]; ok {
		return info
	}

	if s.scraper != nil {
		if info, err := s.scraper.Search(ctx, code); err == nil && info != nil {
			return *info
		}
	}

	return unknownMedication
}
