package autoresponder

import (
	"fmt"
	"strconv"
)

type language int

const (
	polish language = iota
	english
)

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func render(intent Intent, attrs Attributes, lang language) string {
	price, hasPrice := attrs.PricePerWeek.Get()

	switch intent {
	case IntentBarter:
		if lang == english {
			if attrs.IsBarterAvailable {
				return "Yes, this adspace is available for barter. Tell us what you can offer in exchange."
			}
			if hasPrice {
				return fmt.Sprintf("Unfortunately barter is not available for this adspace. The price is %s PLN per week.", formatPrice(price))
			}
			return "Unfortunately barter is not available for this adspace."
		}
		if attrs.IsBarterAvailable {
			return "Tak, ta powierzchnia jest dostępna w ramach barteru. Napisz, co możesz zaoferować w zamian."
		}
		if hasPrice {
			return fmt.Sprintf("Niestety ta powierzchnia nie jest dostępna w ramach barteru. Cena wynosi %s zł za tydzień.", formatPrice(price))
		}
		return "Niestety ta powierzchnia nie jest dostępna w ramach barteru."

	case IntentPrice:
		if lang == english {
			if hasPrice {
				return fmt.Sprintf("The price for this adspace is %s PLN per week.", formatPrice(price))
			}
			if attrs.IsBarterAvailable {
				return "This adspace has no fixed price, but it is available for barter."
			}
			return "The price for this adspace is set individually. Let us know what you need."
		}
		if hasPrice {
			return fmt.Sprintf("Cena za tę powierzchnię wynosi %s zł za tydzień.", formatPrice(price))
		}
		if attrs.IsBarterAvailable {
			return "Ta powierzchnia nie ma stałej ceny, ale jest dostępna w ramach barteru."
		}
		return "Cena tej powierzchni ustalana jest indywidualnie. Napisz, czego potrzebujesz."

	case IntentAvailability:
		if lang == english {
			if attrs.InUse {
				return "This adspace is currently in use. Ask us about the next free date."
			}
			return "This adspace is currently available."
		}
		if attrs.InUse {
			return "Ta powierzchnia jest obecnie zajęta. Zapytaj o najbliższy wolny termin."
		}
		return "Ta powierzchnia jest obecnie dostępna."
	}
	return ""
}
