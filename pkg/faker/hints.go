package faker

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// Hint classifies a field name for string generation.
type Hint int

// Known hints.
const (
	HintNone Hint = iota
	HintName
	HintFirstName
	HintLastName
	HintUsername
	HintEmail
	HintPhone
	HintAddress
	HintStreet
	HintCity
	HintState
	HintCountry
	HintZip
	HintCompany
	HintJobTitle
	HintTitle
	HintDescription
	HintURL
	HintColor
	HintCurrency
	HintWord
	HintMIMEType
	HintIPv4
	HintPrice
)

// hintNames maps snake_case field names (or their trailing segments) to hints.
var hintNames = map[string]Hint{
	"name":         HintName,
	"full_name":    HintName,
	"display_name": HintName,
	"first_name":   HintFirstName,
	"given_name":   HintFirstName,
	"last_name":    HintLastName,
	"family_name":  HintLastName,
	"surname":      HintLastName,
	"username":     HintUsername,
	"user_name":    HintUsername,
	"login":        HintUsername,
	"handle":       HintUsername,
	"email":        HintEmail,
	"mail":         HintEmail,
	"phone":        HintPhone,
	"phone_number": HintPhone,
	"mobile":       HintPhone,
	"address":      HintAddress,
	"street":       HintStreet,
	"city":         HintCity,
	"state":        HintState,
	"country":      HintCountry,
	"zip":          HintZip,
	"zip_code":     HintZip,
	"postal_code":  HintZip,
	"company":      HintCompany,
	"company_name": HintCompany,
	"organization": HintCompany,
	"job_title":    HintJobTitle,
	"position":     HintJobTitle,
	"title":        HintTitle,
	"headline":     HintTitle,
	"description":  HintDescription,
	"summary":      HintDescription,
	"content":      HintDescription,
	"body":         HintDescription,
	"bio":          HintDescription,
	"url":          HintURL,
	"uri":          HintURL,
	"website":      HintURL,
	"homepage":     HintURL,
	"avatar":       HintURL,
	"image":        HintURL,
	"color":        HintColor,
	"colour":       HintColor,
	"currency":     HintCurrency,
	"word":         HintWord,
	"slug":         HintWord,
	"tag":          HintWord,
	"keyword":      HintWord,
	"mime_type":    HintMIMEType,
	"content_type": HintMIMEType,
	"ip":           HintIPv4,
	"ip_address":   HintIPv4,
	"price":        HintPrice,
	"amount":       HintPrice,
}

// HintFor classifies fieldName. "firstName", "first_name" and
// "billingFirstName" all map to HintFirstName; the longest known trailing
// segment wins.
func HintFor(fieldName string) Hint {
	snake := strcase.ToSnake(fieldName)
	if h, ok := hintNames[snake]; ok {
		return h
	}
	for i := 0; i < len(snake); i++ {
		if snake[i] != '_' {
			continue
		}
		if h, ok := hintNames[snake[i+1:]]; ok {
			return h
		}
	}
	return HintNone
}

// Hinted returns a value for hint drawn from the generator's stream.
func (g *Generator) Hinted(hint Hint) string {
	switch hint {
	case HintName:
		return g.pick(firstNames) + " " + g.pick(lastNames)
	case HintFirstName:
		return g.pick(firstNames)
	case HintLastName:
		return g.pick(lastNames)
	case HintUsername:
		return strings.ToLower(g.pick(firstNames)) + fmt.Sprintf("%d", g.intN(1000))
	case HintEmail:
		return g.Email()
	case HintPhone:
		return fmt.Sprintf("+1-%03d-%03d-%04d", g.intN(900)+100, g.intN(900)+100, g.intN(10000))
	case HintAddress:
		idx := g.intN(len(cities))
		return fmt.Sprintf("%d %s, %s, %s %05d", g.intN(9999)+1, g.pick(streets), cities[idx], states[idx], g.intN(99999))
	case HintStreet:
		return fmt.Sprintf("%d %s", g.intN(9999)+1, g.pick(streets))
	case HintCity:
		return g.pick(cities)
	case HintState:
		return g.pick(states)
	case HintCountry:
		return g.pick(countries)
	case HintZip:
		return fmt.Sprintf("%05d", g.intN(99999))
	case HintCompany:
		return g.pick(companies)
	case HintJobTitle:
		return g.pick(jobLevels) + " " + g.pick(jobFields) + " " + g.pick(jobRoles)
	case HintTitle:
		return g.pick(productAdjectives) + " " + g.pick(productMaterials) + " " + g.pick(productNouns)
	case HintDescription:
		return g.pick(sentences)
	case HintURL:
		return g.URL()
	case HintColor:
		return g.pick(colors)
	case HintCurrency:
		return g.pick(currencyCodes)
	case HintWord:
		return g.pick(words)
	case HintMIMEType:
		return g.pick(mimeTypes)
	case HintIPv4:
		return fmt.Sprintf("%d.%d.%d.%d", g.intN(256), g.intN(256), g.intN(256), g.intN(256))
	case HintPrice:
		return fmt.Sprintf("%d.%02d", g.intN(999)+1, g.intN(100))
	}
	return ""
}

// Email returns an address at one of the reserved test domains.
func (g *Generator) Email() string {
	return strings.ToLower(g.pick(firstNames)) + fmt.Sprintf("%d", g.intN(1000)) + "@" + g.pick(emailDomains)
}

// URL returns an https URL on a test domain.
func (g *Generator) URL() string {
	return fmt.Sprintf("https://%s/%s/%d", g.pick(emailDomains), g.pick(words), g.intN(10000))
}

func humanize(label string) string {
	return strcase.ToDelimited(label, ' ')
}
