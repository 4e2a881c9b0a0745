// package formatter renders lettings and profiles in the CLI output formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/shared"
)

// Format is an output format name accepted by the list commands.
type Format string

const (
	Text     Format = "text"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{Text, CSV, Markdown, JSON}

// ParseFormat validates a format name. An empty name yields [Text]; "md" is accepted for [Markdown].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return Text, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: format %q (expected text, csv, markdown or json)", shared.ErrInvalidFlag, name)
	}
}

// Lettings renders lettings in the given format.
func Lettings(format Format, lettings []*models.Letting) ([]byte, error) {
	switch format {
	case CSV:
		return LettingsToCSV(lettings)
	case Markdown:
		return LettingsToMarkdown(lettings)
	case JSON:
		return ToJSON(lettings)
	default:
		return LettingsToText(lettings)
	}
}

// Profiles renders profiles in the given format.
func Profiles(format Format, profiles []*models.Profile) ([]byte, error) {
	switch format {
	case CSV:
		return ProfilesToCSV(profiles)
	case Markdown:
		return ProfilesToMarkdown(profiles)
	case JSON:
		return ToJSON(profiles)
	default:
		return ProfilesToText(profiles)
	}
}

// LettingsToCSV converts lettings to CSV with columns: ID, Title, Number, Street, City, State, ZipCode, Country
func LettingsToCSV(lettings []*models.Letting) ([]byte, error) {
	headers := []string{"ID", "Title", "Number", "Street", "City", "State", "ZipCode", "Country"}

	records := make([][]string, 0, len(lettings))
	for _, l := range lettings {
		a := l.Address
		if a == nil {
			a = &models.Address{}
		}
		records = append(records, []string{
			strconv.FormatInt(l.ID, 10),
			l.Title,
			strconv.Itoa(a.Number),
			a.Street,
			a.City,
			a.State,
			strconv.Itoa(a.ZipCode),
			a.CountryISOCode,
		})
	}

	return writeCSV(headers, records)
}

// ProfilesToCSV converts profiles to CSV with columns: ID, Username, FirstName, LastName, Email, FavoriteCity
func ProfilesToCSV(profiles []*models.Profile) ([]byte, error) {
	headers := []string{"ID", "Username", "FirstName", "LastName", "Email", "FavoriteCity"}

	records := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		u := p.User
		if u == nil {
			u = &models.User{}
		}
		records = append(records, []string{
			strconv.FormatInt(p.ID, 10),
			u.Username,
			u.FirstName,
			u.LastName,
			u.Email,
			p.FavoriteCity,
		})
	}

	return writeCSV(headers, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// LettingsToMarkdown converts lettings to a Markdown table
func LettingsToMarkdown(lettings []*models.Letting) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Lettings\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(lettings)))

	if len(lettings) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Title | Address | City |\n")
	buf.WriteString("| --- | --- | --- | --- |\n")
	for _, l := range lettings {
		address, city := "", ""
		if l.Address != nil {
			address = l.Address.String()
			city = fmt.Sprintf("%s, %s", l.Address.City, l.Address.State)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", l.ID, escapeCell(l.Title), escapeCell(address), escapeCell(city)))
	}

	return buf.Bytes(), nil
}

// ProfilesToMarkdown converts profiles to a Markdown table
func ProfilesToMarkdown(profiles []*models.Profile) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Profiles\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(profiles)))

	if len(profiles) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Username | Favorite city |\n")
	buf.WriteString("| --- | --- | --- |\n")
	for _, p := range profiles {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s |\n", p.ID, escapeCell(p.String()), escapeCell(p.FavoriteCity)))
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// LettingsToText converts lettings to a numbered plain text list
func LettingsToText(lettings []*models.Letting) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Lettings: %d\n\n", len(lettings)))
	for _, l := range lettings {
		buf.WriteString(fmt.Sprintf("%d. %s\n", l.ID, l.Title))
	}

	return buf.Bytes(), nil
}

// ProfilesToText converts profiles to a numbered plain text list
func ProfilesToText(profiles []*models.Profile) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Profiles: %d\n\n", len(profiles)))
	for _, p := range profiles {
		buf.WriteString(fmt.Sprintf("%d. %s\n", p.ID, p))
	}

	return buf.Bytes(), nil
}

// LettingDetail renders one letting with its full address as plain text
func LettingDetail(l *models.Letting) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Letting: %s\n", l.Title))
	b.WriteString(fmt.Sprintf("ID: %d\n", l.ID))
	if a := l.Address; a != nil {
		b.WriteString(fmt.Sprintf("Address: %s\n", a))
		b.WriteString(fmt.Sprintf("         %s, %s %d\n", a.City, a.State, a.ZipCode))
		b.WriteString(fmt.Sprintf("         %s\n", a.CountryISOCode))
	}

	return b.String()
}

// ProfileDetail renders one profile with its user as plain text
func ProfileDetail(p *models.Profile) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Profile: %s\n", p))
	if u := p.User; u != nil {
		if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
			b.WriteString(fmt.Sprintf("Name: %s\n", name))
		}
		if u.Email != "" {
			b.WriteString(fmt.Sprintf("Email: %s\n", u.Email))
		}
	}
	if p.FavoriteCity != "" {
		b.WriteString(fmt.Sprintf("Favorite city: %s\n", p.FavoriteCity))
	}

	return b.String()
}

// ToJSON renders v as indented JSON followed by a newline
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
