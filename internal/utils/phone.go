package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Egyptian mobile: 01 then one of 0, 1, 2, 5, then 8 digits
	mobilePattern = regexp.MustCompile(`^01[0125]\d{8}$`)
	// Egyptian landline: 0 then 9 digits
	landlinePattern = regexp.MustCompile(`^0\d{9}$`)
	nonDigits       = regexp.MustCompile(`\D`)
)

// ValidatePhone reports whether phone is a national mobile or landline number
func ValidatePhone(phone string) bool {
	return mobilePattern.MatchString(phone) || landlinePattern.MatchString(phone)
}

// WhatsAppNumber strips everything but digits and drops leading zeros
func WhatsAppNumber(phone string) string {
	return strings.TrimLeft(nonDigits.ReplaceAllString(phone, ""), "0")
}

// WhatsAppGreeting is the opening message sent to a driver; %s is the driver's name
const WhatsAppGreeting = "مرحباً %s, هل أنت متاح لمشوار؟"

// WhatsAppURL builds a wa.me deep link. An empty phone yields the share-only link.
func WhatsAppURL(phone, text string) string {
	number := WhatsAppNumber(phone)
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, escaped)
}

// CallURL builds a tel: link
func CallURL(phone string) string {
	return "tel:" + phone
}

// GoogleMapsURL links to a coordinate on Google Maps
func GoogleMapsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", lat, lng)
}

// MaskPhoneNumber masks a phone number, keeping only the last 4 digits visible
func MaskPhoneNumber(phone string) string {
	cleanPhone := nonDigits.ReplaceAllString(phone, "")
	if len(cleanPhone) <= 4 {
		return cleanPhone
	}
	return strings.Repeat("*", len(cleanPhone)-4) + cleanPhone[len(cleanPhone)-4:]
}
