package report

import (
	"strings"
	"testing"

	"viacampo/models"
)

func TestListaComE(t *testing.T) {
	cases := []struct {
		items []string
		want  string
	}{
		{nil, ""},
		{[]string{"X"}, "X"},
		{[]string{"X", "Y"}, "X e Y"},
		{[]string{"X", "Y", "Z"}, "X, Y e Z"},
	}
	for _, tc := range cases {
		if got := ListaComE(tc.items); got != tc.want {
			t.Errorf("ListaComE(%v) = %q, want %q", tc.items, got, tc.want)
		}
	}
}

func sampleTrip() models.Trip {
	return models.Trip{
		Date:       "2025-12-31", // a Wednesday
		StartTime:  "07:30",
		Technician: "Carlos",
		Assistant:  "Bruno",
		Services:   []string{"Instalação", "Manutenção"},
		Cities: []models.TripCity{
			{
				Name:    "A",
				Enabled: true,
				Clients: []models.TripClient{{Name: "X"}},
			},
		},
	}
}

func TestFormat_RealizadoClient(t *testing.T) {
	feedback := []models.ClosureFeedback{
		{ClientID: "A-0", Status: models.StatusRealizado, AttendantName: "J"},
	}

	text := Format(sampleTrip(), feedback)

	if !strings.Contains(text, "REALIZADOS 1/1") {
		t.Errorf("expected REALIZADOS 1/1 in report, got:\n%s", text)
	}

	lines := strings.Split(text, "\n")
	found := false
	for i, line := range lines {
		if strings.HasSuffix(line, "(REALIZADO)") {
			found = true
			if i+1 >= len(lines) || !strings.Contains(lines[i+1], "J") {
				t.Errorf("expected attendant line naming J after %q, got:\n%s", line, text)
			}
		}
	}
	if !found {
		t.Errorf("expected a line ending (REALIZADO), got:\n%s", text)
	}
}

func TestFormat_MissingFeedbackIsPendente(t *testing.T) {
	text := Format(sampleTrip(), nil)

	if !strings.Contains(text, "(PENDENTE)") {
		t.Errorf("expected (PENDENTE) for slot with no feedback, got:\n%s", text)
	}
	if !strings.Contains(text, "COMPROVANTE RETORNOU PARA A BANDEJA") {
		t.Errorf("expected returned-to-tray line for pending slot, got:\n%s", text)
	}
	if !strings.Contains(text, "REALIZADOS 0/1") {
		t.Errorf("expected REALIZADOS 0/1, got:\n%s", text)
	}
}

func TestFormat_Header(t *testing.T) {
	trip := sampleTrip()
	trip.ArrivalTime = "18:15"

	text := Format(trip, nil)

	for _, want := range []string{
		"QUARTA-FEIRA",
		"31/12/2025",
		"EQUIPE: Carlos e Bruno",
		"DESTINO: A - Instalação e Manutenção",
		"SAÍDA: 07:30",
		"CHEGADA: 18:15",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in header, got:\n%s", want, text)
		}
	}
}

func TestFormat_EmptyTeamRendersNotInformed(t *testing.T) {
	trip := sampleTrip()
	trip.Technician = ""
	trip.Assistant = " "

	text := Format(trip, nil)

	if !strings.Contains(text, "EQUIPE: NÃO INFORMADO") {
		t.Errorf("expected NÃO INFORMADO placeholder for empty team, got:\n%s", text)
	}
}

func TestFormat_RealizadoWithoutAttendantFallsBack(t *testing.T) {
	feedback := []models.ClosureFeedback{
		{ClientID: "A-0", Status: models.StatusRealizado},
	}

	text := Format(sampleTrip(), feedback)

	if !strings.Contains(text, "COMPROVANTE COM: NÃO INFORMADO") {
		t.Errorf("expected attendant fallback, got:\n%s", text)
	}
}

func TestFormat_SkipsDisabledCitiesAndBlankSlots(t *testing.T) {
	trip := sampleTrip()
	trip.Cities = []models.TripCity{
		{
			Name:    "Norte",
			Enabled: true,
			Clients: []models.TripClient{
				{Name: " "},
				{Name: "maria", Note: "reagendado"},
			},
		},
		{
			Name:    "Sul",
			Enabled: false,
			Clients: []models.TripClient{{Name: "oculto"}},
		},
	}

	text := Format(trip, nil)

	if strings.Contains(text, "SUL") || strings.Contains(text, "OCULTO") {
		t.Errorf("disabled city leaked into report:\n%s", text)
	}
	// The blank slot is skipped: maria is slot index 1 but sequence number 1.
	if !strings.Contains(text, "1 - MARIA - REAGENDADO (PENDENTE)") {
		t.Errorf("expected numbered client line with note, got:\n%s", text)
	}
	if !strings.Contains(text, "*NORTE* - REALIZADOS 0/1") {
		t.Errorf("expected city banner counting only filled slots, got:\n%s", text)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	trip := sampleTrip()
	feedback := []models.ClosureFeedback{
		{ClientID: "A-0", Status: models.StatusAusente},
	}

	first := Format(trip, feedback)
	second := Format(trip, feedback)
	if first != second {
		t.Error("Format is not deterministic for identical inputs")
	}

	if !strings.Contains(first, "(AUSENTE)") {
		t.Errorf("expected (AUSENTE) label, got:\n%s", first)
	}
}

func TestFormat_FeedbackKeyUsesSlotIndex(t *testing.T) {
	trip := sampleTrip()
	trip.Cities[0].Clients = []models.TripClient{
		{Name: ""},
		{Name: "cliente"},
	}
	// Feedback is keyed by the slot index (1), not the display sequence.
	feedback := []models.ClosureFeedback{
		{ClientID: FeedbackKey("A", 1), Status: models.StatusNaoRealizado},
	}

	text := Format(trip, feedback)
	if !strings.Contains(text, "(NÃO REALIZADO)") {
		t.Errorf("expected (NÃO REALIZADO) for slot index 1, got:\n%s", text)
	}
}
