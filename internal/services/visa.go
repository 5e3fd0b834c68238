package services

import (
	"strconv"
	"strings"
)

// VisaAdvice is a pragmatic, non-official recommendation tree for a tourist
// trip. The responder turns it into user-facing text.
type VisaAdvice struct {
	Country         string   `json:"country"`
	PassportCountry string   `json:"passport_country"`
	Purpose         string   `json:"purpose"`
	Path            string   `json:"path"`
	AllowedDays     int      `json:"allowed_days"`
	Documents       []string `json:"documents"`
	NextSteps       []string `json:"next_steps"`
	Notes           []string `json:"notes"`
	Disclaimer      string   `json:"disclaimer"`
}

// Passports commonly visa-exempt for short tourist visits to Thailand by air.
// Rules change; keep conservative.
var visaExempt30 = map[string]bool{
	"united states": true, "canada": true, "united kingdom": true, "germany": true,
	"france": true, "italy": true, "spain": true, "portugal": true, "ireland": true,
	"netherlands": true, "belgium": true, "sweden": true, "norway": true,
	"denmark": true, "finland": true, "switzerland": true, "austria": true,
	"australia": true, "new zealand": true, "japan": true, "south korea": true,
	"singapore": true, "malaysia": true, "hong kong": true, "uae": true,
}

// Passports commonly eligible for Thailand eVOA / VOA (indicative list).
var evoaEligible = map[string]bool{
	"india": true, "china": true, "taiwan": true, "kazakhstan": true,
	"saudi arabia": true, "romania": true, "bulgaria": true,
}

const visaDisclaimer = "This is general guidance. Visa rules change—verify on an official Thai government/consulate site or with your airline before you travel."

// EstimateStayDays converts duration strings like "7 days" or "2 weeks"
// into a day count, 0 when unknown.
func EstimateStayDays(duration string) int {
	d := strings.ToLower(strings.TrimSpace(duration))
	if d == "" {
		return 0
	}
	mult := 0
	switch {
	case strings.Contains(d, "day"):
		mult = 1
	case strings.Contains(d, "week"):
		mult = 7
	default:
		return 0
	}
	for _, tok := range strings.Fields(d) {
		if n, err := strconv.Atoi(tok); err == nil {
			return n * mult
		}
	}
	return 0
}

// ThailandVisaAdvice computes a pragmatic recommendation for Thailand
// tourist trips based on passport country, stay length and purpose.
func ThailandVisaAdvice(passportCountry string, stayDays int, purpose string) VisaAdvice {
	pc := strings.ToLower(strings.TrimSpace(passportCountry))
	purpose = strings.ToLower(strings.TrimSpace(purpose))
	if purpose == "" {
		purpose = "tourism"
	}

	advice := VisaAdvice{
		Country:         "Thailand",
		PassportCountry: passportCountry,
		Purpose:         purpose,
		Path:            "unknown",
		Documents: []string{
			"Passport valid 6+ months on arrival",
			"Proof of onward/return ticket within permitted stay",
			"Accommodation address for first nights",
			"Sufficient funds for stay",
		},
		Disclaimer: visaDisclaimer,
	}
	if advice.PassportCountry == "" {
		advice.PassportCountry = "Unknown"
	}

	// Non-tourist purposes almost always require pre-arranged visas.
	switch purpose {
	case "tourism", "leisure", "vacation", "holiday":
	default:
		advice.Path = "non_tourist"
		advice.NextSteps = append(advice.NextSteps,
			"Apply for the appropriate non-tourist visa (e.g., business, work, study) in advance.")
		advice.Notes = append(advice.Notes,
			"You may need invitation/supporting letters and additional documentation.")
		return advice
	}

	switch {
	case visaExempt30[pc]:
		advice.Path = "visa_exempt"
		advice.AllowedDays = 30
		advice.Notes = append(advice.Notes,
			"Nationals of your country are typically visa-exempt for short tourist visits by air.")
		advice.NextSteps = append(advice.NextSteps,
			"Ensure your onward/return flight departs within 30 days of arrival.",
			"If you plan to stay longer, consider a Tourist Visa (TR) or extension.")
	case evoaEligible[pc]:
		advice.Path = "evoa_voa"
		advice.AllowedDays = 15
		advice.Notes = append(advice.Notes,
			"You're commonly eligible for Thailand eVOA/VOA for short tourist visits.")
		advice.NextSteps = append(advice.NextSteps,
			"Apply for an eVOA online before flying, or prepare for Visa on Arrival at select airports.",
			"Make sure your onward/return flight departs within 15 days of arrival.")
		advice.Documents = append(advice.Documents,
			"Passport photo as per eVOA spec",
			"Completed eVOA application (if doing online)")
	case pc != "":
		advice.Path = "tourist_visa_required"
		advice.AllowedDays = 60
		advice.Notes = append(advice.Notes,
			"You'll likely need a Tourist Visa (TR) arranged before travel.")
		advice.NextSteps = append(advice.NextSteps,
			"Apply for a single-entry Tourist Visa (TR) at a Thai embassy/consulate.")
	default:
		advice.Path = "need_passport_info"
		advice.Notes = append(advice.Notes,
			"Tell me your passport country to check if you qualify for visa-exempt, eVOA/VOA, or need a Tourist Visa.")
		return advice
	}

	if stayDays > 0 && advice.AllowedDays > 0 && stayDays > advice.AllowedDays {
		advice.Notes = append(advice.Notes,
			"Your planned stay exceeds the permitted window — arrange a Tourist Visa (TR) or an extension in advance.")
	}
	return advice
}
