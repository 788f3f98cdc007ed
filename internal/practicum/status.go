package practicum

import (
	"fmt"
	"strings"

	"homework-bot/internal/apperrors"
	"homework-bot/internal/models"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var Verdicts = map[models.Status]string{
	models.StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	models.StatusReviewing: "Работа взята на проверку ревьюером.",
	models.StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// ParseStatus turns a homework record into the notification sentence.
func ParseStatus(hw models.Homework) (string, error) {
	const op = "parse status"

	if hw.Name == "" {
		return "", apperrors.Newf(apperrors.KindInvalidResponse, op, `homework has no "homework_name"`)
	}
	if hw.Status == "" {
		return "", apperrors.Newf(apperrors.KindInvalidResponse, op, `homework %q has no "status"`, hw.Name)
	}

	verdict, ok := Verdicts[hw.Status]
	if !ok {
		return "", apperrors.Newf(apperrors.KindUnknownStatus, op, "unknown status %q of homework %q", hw.Status, hw.Name)
	}

	return fmt.Sprintf(`Изменился статус проверки работы "%s". %s`, hw.Name, verdict), nil
}

// Formatter builds notification text, optionally with the reviewer comment.
type Formatter struct {
	IncludeReviewerComment bool
}

func (f Formatter) Format(hw models.Homework) (string, error) {
	msg, err := ParseStatus(hw)
	if err != nil {
		return "", err
	}

	if !f.IncludeReviewerComment {
		return msg, nil
	}

	comment := strings.TrimSpace(hw.ReviewerComment)
	if comment == "" {
		return msg, nil
	}

	// Reviewer comments arrive as HTML.
	if md, err := htmltomarkdown.ConvertString(comment); err == nil {
		comment = strings.TrimSpace(md)
	}
	if comment == "" {
		return msg, nil
	}

	return msg + "\n\n" + comment, nil
}
