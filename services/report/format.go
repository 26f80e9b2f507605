// Package report renders the closure report of a finished trip. Format is a
// pure function: no store access, identical inputs produce identical text.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"viacampo/models"
)

const notInformed = "NÃO INFORMADO"

var weekdayNames = [...]string{
	"DOMINGO",
	"SEGUNDA-FEIRA",
	"TERÇA-FEIRA",
	"QUARTA-FEIRA",
	"QUINTA-FEIRA",
	"SEXTA-FEIRA",
	"SÁBADO",
}

// statusLabels maps stored feedback statuses to their report labels. A
// filled slot with no feedback entry renders as PENDENTE.
var statusLabels = map[string]string{
	models.StatusRealizado:    "REALIZADO",
	models.StatusNaoRealizado: "NÃO REALIZADO",
	models.StatusAusente:      "AUSENTE",
}

// ListaComE joins items with commas and a final "e": ["X","Y","Z"] becomes
// "X, Y e Z". A single item is returned bare and an empty list renders "".
func ListaComE(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " e " + items[len(items)-1]
	}
}

// weekdayOf returns the upper-case Portuguese weekday of a YYYY-MM-DD date,
// or "" when the date does not parse.
func weekdayOf(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return weekdayNames[int(t.Weekday())]
}

// formatDate renders a YYYY-MM-DD date as dd/mm/yyyy, falling back to the
// raw value when it does not parse.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// FeedbackKey builds the composite key of a client slot: "<city>-<index>".
func FeedbackKey(cityName string, slotIndex int) string {
	return cityName + "-" + strconv.Itoa(slotIndex)
}

// Format renders the closure report for a trip and its collected feedback.
func Format(trip models.Trip, feedback []models.ClosureFeedback) string {
	byClient := make(map[string]models.ClosureFeedback, len(feedback))
	for _, fb := range feedback {
		byClient[fb.ClientID] = fb
	}

	var b strings.Builder

	writeHeader(&b, trip)

	for _, city := range trip.Cities {
		if !city.Enabled {
			continue
		}
		b.WriteString("\n")
		writeCityBlock(&b, city, byClient)
	}

	return strings.TrimSpace(b.String())
}

func writeHeader(b *strings.Builder, trip models.Trip) {
	if weekday := weekdayOf(trip.Date); weekday != "" {
		fmt.Fprintf(b, "RELATÓRIO DE VIAGEM - %s (%s)\n", weekday, formatDate(trip.Date))
	} else {
		fmt.Fprintf(b, "RELATÓRIO DE VIAGEM - %s\n", formatDate(trip.Date))
	}

	team := []string{}
	for _, member := range []string{trip.Technician, trip.Assistant} {
		if strings.TrimSpace(member) != "" {
			team = append(team, strings.TrimSpace(member))
		}
	}
	teamLine := ListaComE(team)
	if teamLine == "" {
		teamLine = notInformed
	}
	fmt.Fprintf(b, "EQUIPE: %s\n", teamLine)

	cityNames := []string{}
	for _, city := range trip.EnabledCities() {
		cityNames = append(cityNames, city.Name)
	}
	destination := ListaComE(cityNames)
	if services := ListaComE(trip.Services); services != "" {
		destination += " - " + services
	}
	fmt.Fprintf(b, "DESTINO: %s\n", destination)

	fmt.Fprintf(b, "SAÍDA: %s\n", trip.StartTime)
	if trip.ArrivalTime != "" {
		fmt.Fprintf(b, "CHEGADA: %s\n", trip.ArrivalTime)
	}
}

func writeCityBlock(b *strings.Builder, city models.TripCity, byClient map[string]models.ClosureFeedback) {
	done := 0
	for i := range city.Clients {
		if fb, ok := byClient[FeedbackKey(city.Name, i)]; ok && fb.Status == models.StatusRealizado {
			done++
		}
	}
	fmt.Fprintf(b, "*%s* - REALIZADOS %d/%d\n", strings.ToUpper(city.Name), done, city.FilledClients())

	seq := 0
	for i, client := range city.Clients {
		if !client.Filled() {
			continue
		}
		seq++

		fb, hasFb := byClient[FeedbackKey(city.Name, i)]
		label := "PENDENTE"
		if hasFb {
			if l, ok := statusLabels[fb.Status]; ok {
				label = l
			}
		}

		line := fmt.Sprintf("%d - %s", seq, strings.ToUpper(strings.TrimSpace(client.Name)))
		if note := strings.TrimSpace(client.Note); note != "" {
			line += " - " + strings.ToUpper(note)
		}
		fmt.Fprintf(b, "%s (%s)\n", line, label)

		if hasFb && fb.Status == models.StatusRealizado {
			attendant := strings.TrimSpace(fb.AttendantName)
			if attendant == "" {
				attendant = notInformed
			}
			fmt.Fprintf(b, "COMPROVANTE COM: %s\n", attendant)
		} else {
			b.WriteString("COMPROVANTE RETORNOU PARA A BANDEJA\n")
		}
	}
}
