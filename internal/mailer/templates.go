package mailer

import (
	"fmt"
	"html"
	"strings"
)

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
}

func layout(title string, paragraphs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family:sans-serif\">")
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(title))
	for _, p := range paragraphs {
		fmt.Fprintf(&b, "<p>%s</p>", p)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func link(url, label string) string {
	return fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(url), html.EscapeString(label))
}

func VerificationEmail(name, verifyURL string) Message {
	return Message{
		Subject: "Potvrdenie registrácie",
		HTML: layout("Vitajte, "+name,
			"Pre dokončenie registrácie potvrďte svoju emailovú adresu.",
			link(verifyURL, "Potvrdiť email"),
		),
	}
}

func PasswordResetEmail(name, resetURL string) Message {
	return Message{
		Subject: "Obnova hesla",
		HTML: layout("Obnova hesla",
			fmt.Sprintf("Dobrý deň %s, kliknite na odkaz nižšie na nastavenie nového hesla.", html.EscapeString(name)),
			link(resetURL, "Obnoviť heslo"),
			"Ak ste túto žiadosť neodoslali, ignorujte tento e-mail.",
		),
	}
}

func ReviewerAssignedEmail(reviewerName, paperTitle, dashboardURL string) Message {
	return Message{
		Subject: "Bola vám pridelená práca na recenziu",
		HTML: layout("Nová práca na recenziu",
			fmt.Sprintf("Dobrý deň %s, bola vám pridelená práca <b>%s</b>.",
				html.EscapeString(reviewerName), html.EscapeString(paperTitle)),
			link(dashboardURL, "Otvoriť recenzie"),
		),
	}
}

func PaperDecisionEmail(participantName, paperTitle, status, dashboardURL string) Message {
	return Message{
		Subject: "Zmena stavu vašej práce",
		HTML: layout("Recenzia dokončená",
			fmt.Sprintf("Dobrý deň %s, stav vašej práce <b>%s</b> sa zmenil na <b>%s</b>.",
				html.EscapeString(participantName), html.EscapeString(paperTitle), html.EscapeString(status)),
			link(dashboardURL, "Zobraziť prácu"),
		),
	}
}

func PaperResetEmail(participantName, paperTitle, deadline, dashboardURL string) Message {
	return Message{
		Subject: "Predĺženie termínu odovzdania práce",
		HTML: layout("Práca vrátená na úpravu",
			fmt.Sprintf("Dobrý deň %s, vaša práca <b>%s</b> bola vrátená do stavu návrhu.",
				html.EscapeString(participantName), html.EscapeString(paperTitle)),
			fmt.Sprintf("Nový termín odovzdania je %s.", html.EscapeString(deadline)),
			link(dashboardURL, "Upraviť prácu"),
		),
	}
}

func ReviewerMessageEmail(reviewerName, reviewerEmail, subject, message string) Message {
	return Message{
		Subject: "Správa od recenzenta: " + subject,
		HTML: layout(subject,
			fmt.Sprintf("Od: %s (%s)", html.EscapeString(reviewerName), html.EscapeString(reviewerEmail)),
			strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"),
		),
	}
}
