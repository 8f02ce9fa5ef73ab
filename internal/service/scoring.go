package service

import (
	"fmt"
	"math"
)

// ProviderScore holds the synthetic reputation fields shown in provider search
type ProviderScore struct {
	Rating     float64
	Experience string
	Price      float64
}

// ProviderScorer derives a score from a provider's service count.
// The default is placeholder arithmetic, not a genuine reputation system;
// it is an interface so a real ranking model can replace it without touching
// the surrounding query logic.
type ProviderScorer interface {
	Score(serviceCount int64) ProviderScore
}

type PlaceholderScorer struct{}

func (PlaceholderScorer) Score(serviceCount int64) ProviderScore {
	rating := float64(serviceCount)/10 + 3.5
	if rating > 5 {
		rating = 5.0
	}

	return ProviderScore{
		Rating:     math.Round(rating*10) / 10,
		Experience: fmt.Sprintf("%d years", 1+serviceCount/5),
		Price:      math.Round((50+float64(serviceCount)*2)*100) / 100,
	}
}
