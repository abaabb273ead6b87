package recommend

import (
	"reflect"
	"strings"
	"testing"

	"github.com/startupgps/server/internal/models"
)

func sampleStructuredRec() models.Recommendation {
	return models.Recommendation{
		Schemes: []models.Scheme{
			{Name: "PMEGP", Description: "subsidy"},
			{Name: "Pradhan Mantri Mudra Yojana", Description: "collateral-free loan"},
			{Name: "Kisan Credit Card", Description: "farm credit line"},
		},
		Banks: []models.Bank{
			{Name: "State Bank of India", LoanType: "Mudra loan"},
			{Name: "Gramin Vikas Bank", LoanType: "micro loan"},
		},
		Licenses: []models.License{
			{Name: "Udyam Registration", Description: "MSME registration"},
		},
		Training: []models.Training{
			{Program: "RSETI entrepreneurship course"},
		},
		Budget:    models.Budget{InitialInvestment: "₹60,000", ProjectedROI: "25%"},
		NextSteps: []string{"Register on Udyam"},
	}
}

func TestApplyProfileDropsLoanSchemesWhenCapitalAvailable(t *testing.T) {
	prof := models.UserProfile{Capital: models.CapitalAvailable}
	out := ApplyProfile(sampleStructuredRec(), prof, "dairy")

	for _, s := range out.Schemes {
		name := strings.ToLower(s.Name)
		if strings.Contains(name, "loan") || strings.Contains(name, "credit") {
			t.Errorf("loan/credit scheme %q should be dropped when capital is available", s.Name)
		}
	}
	// PMEGP carries a subsidy rather than a loan and must survive.
	if len(out.Schemes) == 0 || out.Schemes[0].Name != "PMEGP" {
		t.Errorf("non-loan schemes must survive, got %+v", out.Schemes)
	}
}

func TestApplyProfileDropsPMEGPForBelow10th(t *testing.T) {
	prof := models.UserProfile{Education: models.EducationBelow10th}
	out := ApplyProfile(sampleStructuredRec(), prof, "dairy")

	for _, s := range out.Schemes {
		if strings.Contains(strings.ToLower(s.Name), "pmegp") {
			t.Errorf("PMEGP should be dropped for below-10th education, got %+v", out.Schemes)
		}
	}
	if got, want := len(out.Schemes), 2; got != want {
		t.Errorf("len(Schemes) = %d, want %d", got, want)
	}
}

func TestApplyProfileInjectsStateScheme(t *testing.T) {
	tests := []struct {
		name      string
		state     string
		wantExtra string
	}{
		{name: "punjab has a state scheme", state: "Punjab", wantExtra: "Punjab Small Industries Assistance"},
		{name: "bihar has a state scheme", state: "Bihar", wantExtra: "Bihar Mukhyamantri Udyami Yojana"},
		{name: "state without table entry", state: "Goa", wantExtra: ""},
		{name: "unknown state", state: "", wantExtra: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplyProfile(sampleStructuredRec(), models.UserProfile{State: tt.state}, "retail")

			var found bool
			for _, s := range out.Schemes {
				if s.Name == tt.wantExtra {
					found = true
				}
			}
			if tt.wantExtra != "" && !found {
				t.Errorf("expected state scheme %q in %+v", tt.wantExtra, out.Schemes)
			}
			base := len(sampleStructuredRec().Schemes)
			if tt.wantExtra == "" && len(out.Schemes) != base {
				t.Errorf("no state scheme expected, len = %d, want %d", len(out.Schemes), base)
			}
		})
	}
}

func TestApplyProfileSynthesizesExplanations(t *testing.T) {
	out := ApplyProfile(sampleStructuredRec(), models.UserProfile{}, "farming")

	for _, s := range out.Schemes {
		if s.WhyChosen == "" {
			t.Errorf("scheme %q left without WhyChosen", s.Name)
		}
	}
	for _, b := range out.Banks {
		if b.WhyChosen == "" {
			t.Errorf("bank %q left without WhyChosen", b.Name)
		}
	}
	for _, tr := range out.Training {
		if tr.WhyChosen == "" {
			t.Errorf("training %q left without WhyChosen", tr.Program)
		}
	}
	for _, l := range out.Licenses {
		if l.WhyChosen == "" {
			t.Errorf("license %q left without WhyChosen", l.Name)
		}
	}
}

func TestSynthesizeWhyJoinsAllMatches(t *testing.T) {
	rules := []whyRule{
		{"mudra", "first sentence"},
		{"yojana", "second sentence"},
	}

	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{name: "single match", subject: "Mudra scheme", want: "first sentence"},
		{name: "two matches joined in rule order", subject: "Pradhan Mantri Mudra Yojana", want: "first sentence. second sentence"},
		{name: "no match falls back to generic", subject: "Something else", want: "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := synthesizeWhy(tt.subject, rules, "generic"); got != tt.want {
				t.Errorf("synthesizeWhy(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestGenericExplanationsMentionSector(t *testing.T) {
	out := ApplyProfile(sampleStructuredRec(), models.UserProfile{}, "handicrafts")
	// Gramin Vikas Bank matches no bank rule, so it gets the generic sentence.
	var gramin models.Bank
	for _, b := range out.Banks {
		if b.Name == "Gramin Vikas Bank" {
			gramin = b
		}
	}
	if !strings.Contains(gramin.WhyChosen, "handicrafts") {
		t.Errorf("generic explanation should reference the sector, got %q", gramin.WhyChosen)
	}
}

func TestApplyProfileDoesNotMutateInput(t *testing.T) {
	in := sampleStructuredRec()
	snapshot := sampleStructuredRec()

	_ = ApplyProfile(in, models.UserProfile{
		Education: models.EducationBelow10th,
		Capital:   models.CapitalAvailable,
		State:     "Punjab",
	}, "textiles")

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input record was mutated:\n got %+v\nwant %+v", in, snapshot)
	}
}

func TestEnsureWhyChosenFillsOnlyEmpty(t *testing.T) {
	rec := models.Recommendation{
		Schemes: []models.Scheme{
			{Name: "PMEGP", WhyChosen: "model explanation"},
			{Name: "Mudra"},
		},
		Banks:    []models.Bank{{Name: "SBI", LoanType: "Mudra loan"}},
		Licenses: []models.License{{Name: "Udyam Registration"}},
		Training: []models.Training{{Program: "RSETI course"}},
	}

	out := EnsureWhyChosen(rec, "food")

	if out.Schemes[0].WhyChosen != "model explanation" {
		t.Errorf("existing explanation overwritten: %q", out.Schemes[0].WhyChosen)
	}
	if out.Schemes[1].WhyChosen == "" || out.Banks[0].WhyChosen == "" ||
		out.Licenses[0].WhyChosen == "" || out.Training[0].WhyChosen == "" {
		t.Errorf("empty explanations not filled: %+v", out)
	}
}
