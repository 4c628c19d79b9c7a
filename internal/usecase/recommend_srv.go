package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/internal/dto/response"

	"go.uber.org/zap"
)

// Similarity weights for the recommendation heuristic. The graduated terms
// lose one weight point per decay unit of distance, floored at zero.
const (
	weightTypeMatch    = 40.0
	weightPrice        = 35.0
	weightSeats        = 12.0
	weightHorsepower   = 10.0
	weightTransmission = 8.0
	weightFuel         = 6.0
	weightDrivetrain   = 5.0
	sameMakePenalty    = -3.0

	priceDecayUnit      = 10.0
	seatPenaltyPerSeat  = 4.0
	horsepowerDecayUnit = 60.0

	makeDiversityCap    = 2
	defaultRecommendLen = 4
	maxRecommendLen     = 12
	candidatePoolSize   = 200
)

type RecommendService interface {
	ForSlug(ctx context.Context, slug string, limit int) ([]response.RecommendedCarResponse, error)
}

type recommendService struct {
	cars repository.CarRepository
	log  *zap.Logger
}

func NewRecommendService(cars repository.CarRepository, log *zap.Logger) RecommendService {
	return &recommendService{
		cars: cars,
		log:  log,
	}
}

func (s *recommendService) ForSlug(ctx context.Context, slug string, limit int) ([]response.RecommendedCarResponse, error) {
	if limit <= 0 {
		limit = defaultRecommendLen
	}
	if limit > maxRecommendLen {
		limit = maxRecommendLen
	}

	base, err := s.cars.FindActiveBySlug(ctx, slug)
	if err != nil {
		s.log.Error("Failed to find base car", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to find car")
	}
	if base == nil {
		return nil, fmt.Errorf("car not found")
	}

	candidates, err := s.cars.FindCandidates(ctx, base.ID, "", candidatePoolSize)
	if err != nil {
		s.log.Error("Failed to load recommendation candidates", zap.Error(err))
		return nil, fmt.Errorf("failed to get recommendations")
	}

	scored := make([]scoredCar, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredCar{car: c, score: scoreCandidate(base, c)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	picked := pickWithDiversity(scored, limit, makeDiversityCap)

	// Backfill from featured when the pool ran short.
	if len(picked) < limit {
		featured, err := s.cars.FindFeatured(ctx, base.ID, limit)
		if err != nil {
			s.log.Warn("Failed to load featured backfill", zap.Error(err))
		} else {
			picked = backfill(picked, featured, limit)
		}
	}

	out := make([]response.RecommendedCarResponse, 0, len(picked))
	for _, sc := range picked {
		out = append(out, response.RecommendedCarResponse{
			CarResponse: response.CarToResponse(sc.car),
			Score:       math.Round(sc.score*10) / 10,
		})
	}
	return out, nil
}

type scoredCar struct {
	car   *entity.Car
	score float64
}

// scoreCandidate rates how well c substitutes for base. Exact-match terms
// add a fixed weight; price, seats, and horsepower earn graduated credit
// that decays linearly with distance.
func scoreCandidate(base, c *entity.Car) float64 {
	score := 0.0

	if base.Type != "" && equalFold(base.Type, c.Type) {
		score += weightTypeMatch
	}

	priceDiff := math.Abs(c.PricePerDay - base.PricePerDay)
	score += clampScore(weightPrice - priceDiff/priceDecayUnit)

	if base.Chips.Seats > 0 && c.Chips.Seats > 0 {
		seatDiff := math.Abs(float64(c.Chips.Seats - base.Chips.Seats))
		score += clampScore(weightSeats - seatDiff*seatPenaltyPerSeat)
	}

	if base.Chips.Horsepower > 0 && c.Chips.Horsepower > 0 {
		hpDiff := math.Abs(float64(c.Chips.Horsepower - base.Chips.Horsepower))
		score += clampScore(weightHorsepower - hpDiff/horsepowerDecayUnit)
	}

	if equalFold(base.Chips.Transmission, c.Chips.Transmission) && base.Chips.Transmission != "" {
		score += weightTransmission
	}
	if equalFold(base.Chips.Fuel, c.Chips.Fuel) && base.Chips.Fuel != "" {
		score += weightFuel
	}
	if equalFold(base.Specs.Drivetrain, c.Specs.Drivetrain) && base.Specs.Drivetrain != "" {
		score += weightDrivetrain
	}

	if base.Make != "" && equalFold(base.Make, c.Make) {
		score += sameMakePenalty
	}

	return score
}

// clampScore floors a graduated term at zero; the decay never turns a
// similarity credit into a penalty.
func clampScore(v float64) float64 {
	return math.Max(0, v)
}

// pickWithDiversity walks the score-sorted list and keeps at most cap cars
// per make, so one manufacturer cannot fill the whole strip.
func pickWithDiversity(sorted []scoredCar, limit, maxPerMake int) []scoredCar {
	perMake := make(map[string]int)
	var picked []scoredCar

	for _, sc := range sorted {
		if len(picked) == limit {
			break
		}
		key := strings.ToLower(sc.car.Make)
		if perMake[key] >= maxPerMake {
			continue
		}
		perMake[key]++
		picked = append(picked, sc)
	}

	// Second pass without the cap if diversity left holes.
	if len(picked) < limit {
		seen := make(map[string]struct{}, len(picked))
		for _, sc := range picked {
			seen[sc.car.ID.String()] = struct{}{}
		}
		for _, sc := range sorted {
			if len(picked) == limit {
				break
			}
			if _, ok := seen[sc.car.ID.String()]; ok {
				continue
			}
			picked = append(picked, sc)
		}
	}

	return picked
}

func backfill(picked []scoredCar, featured []*entity.Car, limit int) []scoredCar {
	seen := make(map[string]struct{}, len(picked))
	for _, sc := range picked {
		seen[sc.car.ID.String()] = struct{}{}
	}
	for _, c := range featured {
		if len(picked) == limit {
			break
		}
		if _, ok := seen[c.ID.String()]; ok {
			continue
		}
		picked = append(picked, scoredCar{car: c, score: 0})
	}
	return picked
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
