package settlement

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

var testRoster = []string{"will", "dio", "rosen", "charlie"}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestGroupBetScenario(t *testing.T) {
	// will lays a -110 line for the whole crew and it hits: everyone
	// (will included) collects the profit, will covers all four payouts.
	bets := []Bet{{
		ID:              "b1",
		WeekendID:       "2025-week-1",
		Status:          StatusWon,
		Mode:            ModeGroup,
		PlacedBy:        "will",
		Participants:    []string{"will", "dio", "rosen", "charlie"},
		AmountPerPerson: 25,
		Odds:            -110,
	}}

	res := Compute("2025-week-1", bets, testRoster)

	for _, u := range []string{"will", "dio", "rosen", "charlie"} {
		if got := res.UserBalances[u].Won; !approx(got, 22.73) {
			t.Errorf("%s won = %.2f, want 22.73", u, got)
		}
	}
	if got := res.UserBalances["will"].Lost; !approx(got, 90.91) {
		t.Errorf("will lost = %.2f, want 90.91", got)
	}

	var sum float64
	for _, b := range res.UserBalances {
		sum += b.Net
	}
	if math.Abs(sum) > 0.02 {
		t.Errorf("net sum = %.4f, want ~0 (conservation)", sum)
	}
	if res.Summary.ResolvedBets != 1 || res.Summary.TotalBets != 1 {
		t.Errorf("summary counts = %d/%d, want 1/1", res.Summary.ResolvedBets, res.Summary.TotalBets)
	}
}

func TestHeadToHeadPlacerLost(t *testing.T) {
	// status=lost means the placer lost: dio placed, so rosen collects.
	bets := []Bet{{
		ID:              "b1",
		WeekendID:       "2025-week-2",
		Status:          StatusLost,
		Mode:            ModeHeadToHead,
		PlacedBy:        "dio",
		Participants:    []string{"dio", "rosen"},
		AmountPerPerson: 50,
	}}

	res := Compute("2025-week-2", bets, testRoster)

	if got := res.UserBalances["rosen"].Net; !approx(got, 50) {
		t.Errorf("rosen net = %.2f, want +50", got)
	}
	if got := res.UserBalances["dio"].Net; !approx(got, -50) {
		t.Errorf("dio net = %.2f, want -50", got)
	}
	total := res.UserBalances["rosen"].Net + res.UserBalances["dio"].Net
	if !approx(total, 0) {
		t.Errorf("head-to-head total change = %.2f, want 0", total)
	}
}

func TestHeadToHeadPlacerWon(t *testing.T) {
	bets := []Bet{{
		ID:              "b1",
		Status:          StatusWon,
		Mode:            ModeHeadToHead,
		PlacedBy:        "dio",
		Participants:    []string{"dio", "rosen"},
		AmountPerPerson: 50,
	}}

	res := Compute("2025-week-2", bets, testRoster)

	if got := res.UserBalances["dio"].Net; !approx(got, 50) {
		t.Errorf("dio net = %.2f, want +50", got)
	}
	if got := res.UserBalances["rosen"].Net; !approx(got, -50) {
		t.Errorf("rosen net = %.2f, want -50", got)
	}
}

func TestGroupConservation(t *testing.T) {
	bets := []Bet{
		{ID: "b1", Status: StatusWon, Mode: ModeGroup, PlacedBy: "will",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 10, Odds: 150},
		{ID: "b2", Status: StatusLost, Mode: ModeGroup, PlacedBy: "dio",
			Participants: []string{"will", "charlie"}, AmountPerPerson: 20, Odds: -200},
		{ID: "b3", Status: StatusLost, Mode: ModeParlay, PlacedBy: "charlie",
			Participants: []string{"charlie", "rosen", "will"}, AmountPerPerson: 5, Odds: 600},
		{ID: "b4", Status: StatusCancelled, Mode: ModeGroup, PlacedBy: "will",
			Participants: []string{"dio"}, AmountPerPerson: 100, Odds: 100},
		{ID: "b5", Status: StatusActive, Mode: ModeGroup, PlacedBy: "rosen",
			Participants: []string{"will"}, AmountPerPerson: 30, Odds: -110},
	}

	res := Compute("2025-week-3", bets, testRoster)

	var sum float64
	for _, b := range res.UserBalances {
		sum += b.Net
	}
	if math.Abs(sum) > 0.01*float64(len(bets)) {
		t.Errorf("net sum = %.4f, want ~0", sum)
	}
	if res.Summary.ResolvedBets != 3 {
		t.Errorf("resolved = %d, want 3 (cancelled and active ignored)", res.Summary.ResolvedBets)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestMinimizeFixture(t *testing.T) {
	nets := map[string]float64{"A": 30, "B": 20, "C": -50}

	got, warnings := minimize(nets)

	want := []Settlement{
		{From: "C", To: "A", Amount: 30},
		{From: "C", To: "B", Amount: 20},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settlements = %+v, want %+v", got, want)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestMinimizeSuppressesSubCent(t *testing.T) {
	nets := map[string]float64{"A": 0.004, "B": -0.004}

	got, warnings := minimize(nets)
	if len(got) != 0 {
		t.Errorf("expected no settlements for sub-cent balances, got %+v", got)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestMinimizeReportsLeftover(t *testing.T) {
	// Conservation violated: more owed than available. The excess must be
	// surfaced, not dropped.
	nets := map[string]float64{"A": 10, "B": -4}

	got, warnings := minimize(nets)
	if len(got) != 1 || got[0].Amount != 4 {
		t.Fatalf("settlements = %+v, want single transfer of 4", got)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "A") {
		t.Errorf("warnings = %v, want unreconciled balance for A", warnings)
	}
}

func TestReconcileOpposingHeadToHeads(t *testing.T) {
	// dio and rosen each placed a head-to-head on the same matchup, each
	// selection naming the other. One direct transfer should replace the
	// pool round-trip.
	bets := []Bet{
		{ID: "b1", Status: StatusWon, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 40,
			Selection: "Chiefs -3 vs rosen"},
		{ID: "b2", Status: StatusLost, Mode: ModeHeadToHead, PlacedBy: "rosen",
			Participants: []string{"rosen", "dio"}, AmountPerPerson: 40,
			Selection: "Broncos +3 vs dio"},
	}

	res := Compute("2025-week-4", bets, testRoster)

	// Accumulator: each bet moves 40 dio<-rosen, reconciler adds one more
	// 40 transfer for the matched pair.
	if got := res.UserBalances["dio"].Net; !approx(got, 120) {
		t.Errorf("dio net = %.2f, want 120", got)
	}
	if got := res.UserBalances["rosen"].Net; !approx(got, -120) {
		t.Errorf("rosen net = %.2f, want -120", got)
	}
	if len(res.Settlements) != 1 {
		t.Fatalf("settlements = %+v, want exactly one rosen->dio transfer", res.Settlements)
	}
	s := res.Settlements[0]
	if s.From != "rosen" || s.To != "dio" || !approx(s.Amount, 120) {
		t.Errorf("settlement = %+v, want rosen->dio 120", s)
	}
}

func TestReconcileNoMatchLeavesBalances(t *testing.T) {
	bets := []Bet{
		{ID: "b1", Status: StatusWon, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 40,
			Selection: "Chiefs -3"},
	}

	res := Compute("2025-week-4", bets, testRoster)
	if got := res.UserBalances["dio"].Net; !approx(got, 40) {
		t.Errorf("dio net = %.2f, want 40 (accumulator only)", got)
	}
}

func TestIdempotence(t *testing.T) {
	bets := []Bet{
		{ID: "b1", Status: StatusWon, Mode: ModeGroup, PlacedBy: "will",
			Participants: []string{"will", "dio", "rosen", "charlie"}, AmountPerPerson: 25, Odds: -110},
		{ID: "b2", Status: StatusLost, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 50},
		{ID: "b3", Status: StatusLost, Mode: ModeGroup, PlacedBy: "charlie",
			Participants: []string{"will", "dio"}, AmountPerPerson: 15, Odds: 120},
	}

	a := Compute("2025-week-5", bets, testRoster)
	b := Compute("2025-week-5", bets, testRoster)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("settlement is not idempotent:\n%+v\nvs\n%+v", a, b)
	}
}

func TestInvalidOddsSkipsBetOnly(t *testing.T) {
	bets := []Bet{
		{ID: "bad", Status: StatusWon, Mode: ModeGroup, PlacedBy: "will",
			Participants: []string{"dio"}, AmountPerPerson: 10, Odds: 0},
		{ID: "good", Status: StatusLost, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 20},
	}

	res := Compute("2025-week-6", bets, testRoster)

	if got := res.UserBalances["rosen"].Net; !approx(got, 20) {
		t.Errorf("rosen net = %.2f, want 20 (good bet still settles)", got)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "invalid odds") {
		t.Errorf("warnings = %v, want invalid odds warning for bet 'bad'", res.Warnings)
	}
}

func TestUnknownParticipantWarned(t *testing.T) {
	bets := []Bet{
		{ID: "b1", Status: StatusLost, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "stranger"}, AmountPerPerson: 30},
	}

	res := Compute("2025-week-7", bets, testRoster)

	if got := res.UserBalances["dio"].Net; !approx(got, -30) {
		t.Errorf("dio net = %.2f, want -30", got)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "stranger") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want unknown participant warning for stranger", res.Warnings)
	}
}

type fakeSource struct {
	bets []Bet
	err  error
}

func (f *fakeSource) BetsForWeekend(ctx context.Context, weekendID string) ([]Bet, error) {
	return f.bets, f.err
}

func TestEngineSettle(t *testing.T) {
	src := &fakeSource{bets: []Bet{
		{ID: "b1", Status: StatusLost, Mode: ModeHeadToHead, PlacedBy: "dio",
			Participants: []string{"dio", "rosen"}, AmountPerPerson: 50},
	}}
	eng := NewEngine(zap.NewNop(), src, testRoster)

	res, err := eng.Settle(context.Background(), "2025-week-8")
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if len(res.Settlements) != 1 {
		t.Fatalf("settlements = %+v, want one", res.Settlements)
	}
	if res.Settlements[0].From != "dio" || res.Settlements[0].To != "rosen" {
		t.Errorf("settlement = %+v, want dio->rosen", res.Settlements[0])
	}
}

func TestEngineSettleStorageFailure(t *testing.T) {
	wantErr := errors.New("pg down")
	eng := NewEngine(zap.NewNop(), &fakeSource{err: wantErr}, testRoster)

	_, err := eng.Settle(context.Background(), "2025-week-8")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}
