package rekuest

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/twlotto/backend/internal/pkg/lterr"
)

var (
	Validate = validator.New()

	trans ut.Translator
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")

	if err := enTranslations.RegisterDefaultTranslations(Validate, trans); err != nil {
		log.Warn().Err(err).Str("locale", "en").Msg("could not register translation")
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// translate translates errors into ErrorResponses
func translate(ve validator.ValidationErrors) []*ErrorResponse {
	errs := make([]*ErrorResponse, 0, len(ve))

	for _, fe := range ve {
		errs = append(errs, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(trans),
		})
	}

	return errs
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if err := validateStruct(dest); err != nil {
		return lterr.NewInvalidViolations(err)
	}

	return nil
}

type gameRequest struct {
	GameName string `validate:"required,min=1,max=64"`
}

func ValidGameName(ctx *fiber.Ctx, gameName string) error {
	return ValidStruct(ctx, gameRequest{gameName})
}
