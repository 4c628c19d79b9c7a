package usecase

import (
	"testing"

	"car-rental/internal/data/entity"

	"github.com/google/uuid"
)

func car(make, model, carType string, price float64, seats, hp int) *entity.Car {
	return &entity.Car{
		Base: entity.Base{ID: uuid.New()},
		Make: make, Model: model, Type: carType,
		PricePerDay: price,
		Chips:       entity.CarChips{Seats: seats, Horsepower: hp},
	}
}

func TestScoreCandidateTypeAndPriceDominate(t *testing.T) {
	base := car("Porsche", "911", "sports", 300, 2, 450)

	sameType := car("Ferrari", "Roma", "sports", 300, 2, 450)
	otherType := car("Toyota", "Sienna", "van", 300, 2, 450)

	if s1, s2 := scoreCandidate(base, sameType), scoreCandidate(base, otherType); s1 <= s2 {
		t.Errorf("same type scored %v, other type %v; want same type higher", s1, s2)
	}
}

func TestScoreCandidatePriceProximity(t *testing.T) {
	base := car("BMW", "M4", "coupe", 200, 4, 500)

	close := car("Audi", "RS5", "coupe", 210, 4, 500)
	far := car("Audi", "A3", "coupe", 600, 4, 500)

	if s1, s2 := scoreCandidate(base, close), scoreCandidate(base, far); s1 <= s2 {
		t.Errorf("close price scored %v, far price %v; want close higher", s1, s2)
	}
}

func TestScoreCandidateSameMakePenalty(t *testing.T) {
	base := car("Tesla", "Model 3", "sedan", 150, 5, 350)

	sameMake := car("Tesla", "Model S", "sedan", 150, 5, 350)
	otherMake := car("Polestar", "2", "sedan", 150, 5, 350)

	s1, s2 := scoreCandidate(base, sameMake), scoreCandidate(base, otherMake)
	if s2-s1 != -sameMakePenalty {
		t.Errorf("penalty delta = %v, want %v", s2-s1, -sameMakePenalty)
	}
}

func TestScoreCandidateGraduatedTerms(t *testing.T) {
	base := car("BMW", "M4", "coupe", 200, 5, 500)

	t.Run("price decays one point per ten", func(t *testing.T) {
		exact := car("Audi", "RS5", "coupe", 200, 5, 500)
		off := car("Audi", "S5", "coupe", 300, 5, 500)
		if got := scoreCandidate(base, exact) - scoreCandidate(base, off); got != 10 {
			t.Errorf("price delta = %v, want 10 (100 apart)", got)
		}
	})

	t.Run("near seat count earns partial credit", func(t *testing.T) {
		oneOff := car("Audi", "RS5", "coupe", 200, 4, 500)
		farOff := car("Audi", "Q7", "coupe", 200, 2, 500)
		s1, s2 := scoreCandidate(base, oneOff), scoreCandidate(base, farOff)
		if s1-s2 != 8 {
			t.Errorf("seat delta = %v, want 8 (one off keeps 8, three off keeps 0)", s1-s2)
		}
	})

	t.Run("horsepower decays one point per sixty", func(t *testing.T) {
		exact := car("Audi", "RS5", "coupe", 200, 5, 500)
		off := car("Audi", "S5", "coupe", 200, 5, 380)
		if got := scoreCandidate(base, exact) - scoreCandidate(base, off); got != 2 {
			t.Errorf("horsepower delta = %v, want 2 (120 apart)", got)
		}
	})

	t.Run("decay never goes negative", func(t *testing.T) {
		distant := car("Audi", "A1", "coupe", 5000, 50, 9000)
		near := car("Audi", "RS5", "coupe", 200, 5, 500)
		if s1, s2 := scoreCandidate(base, distant), scoreCandidate(base, near); s1 >= s2 {
			t.Errorf("distant car scored %v, near car %v; want near higher", s1, s2)
		}
		if s := scoreCandidate(base, distant); s < 40 {
			t.Errorf("score = %v, want at least the type weight (graduated terms floor at 0)", s)
		}
	})
}

func TestPickWithDiversityCapsPerMake(t *testing.T) {
	sorted := []scoredCar{
		{car: car("Audi", "A1", "hatch", 100, 5, 100), score: 90},
		{car: car("Audi", "A2", "hatch", 100, 5, 100), score: 80},
		{car: car("Audi", "A3", "hatch", 100, 5, 100), score: 70},
		{car: car("BMW", "1er", "hatch", 100, 5, 100), score: 60},
		{car: car("VW", "Golf", "hatch", 100, 5, 100), score: 50},
	}

	picked := pickWithDiversity(sorted, 4, 2)
	if len(picked) != 4 {
		t.Fatalf("picked %d cars, want 4", len(picked))
	}

	audis := 0
	for _, sc := range picked {
		if sc.car.Make == "Audi" {
			audis++
		}
	}
	if audis != 2 {
		t.Errorf("picked %d Audis, want 2 (diversity cap)", audis)
	}
}

func TestPickWithDiversityRelaxesCapWhenPoolIsNarrow(t *testing.T) {
	sorted := []scoredCar{
		{car: car("Audi", "A1", "hatch", 100, 5, 100), score: 90},
		{car: car("Audi", "A2", "hatch", 100, 5, 100), score: 80},
		{car: car("Audi", "A3", "hatch", 100, 5, 100), score: 70},
	}

	picked := pickWithDiversity(sorted, 3, 2)
	if len(picked) != 3 {
		t.Errorf("picked %d cars, want 3 (cap relaxed to fill)", len(picked))
	}
}

func TestBackfillSkipsDuplicates(t *testing.T) {
	a := car("Kia", "EV6", "suv", 120, 5, 320)
	b := car("Hyundai", "Ioniq 5", "suv", 120, 5, 300)

	picked := []scoredCar{{car: a, score: 50}}
	out := backfill(picked, []*entity.Car{a, b}, 2)

	if len(out) != 2 {
		t.Fatalf("backfilled to %d cars, want 2", len(out))
	}
	if out[1].car.ID != b.ID {
		t.Errorf("backfill picked duplicate instead of new car")
	}
}
