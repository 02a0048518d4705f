package pricing_http_handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/init-pkg/print-pricing/domain/app"
	"github.com/init-pkg/print-pricing/domain/dtos"
	"github.com/init-pkg/print-pricing/internal/errs"
)

type PricingHttpHandler struct {
	service  app.PricingService
	table    *app.PriceTable
	validate *validator.Validate
}

func New(service app.PricingService, table *app.PriceTable, validate *validator.Validate) *PricingHttpHandler {
	return &PricingHttpHandler{service, table, validate}
}

func Mount(handler *PricingHttpHandler, mainApp *fiber.App) {
	handler.Register(mainApp)
}

func (this *PricingHttpHandler) Register(app *fiber.App) {
	app.Post("/gemini", this.ask)
	app.Get("/health", this.health)
}

// ask godoc
//
//	@Summary	Answer a pricing question
//	@Tags		pricing
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dtos.AskRequest	true	"Question"
//	@Success	200		{object}	dtos.AskResponse
//	@Failure	400		{object}	dtos.ErrorResponse
//	@Failure	502		{object}	dtos.ErrorResponse
//	@Failure	500		{object}	dtos.ErrorResponse
//	@Router		/gemini [post]
func (this *PricingHttpHandler) ask(fctx fiber.Ctx) error {
	var req dtos.AskRequest
	if err := fctx.Bind().Body(&req); err != nil {
		return errs.Wrap(errs.KindValidation, err, &errs.ErrorOpts{Message: "body must be a JSON object with a question"})
	}
	if err := this.validate.Struct(req); err != nil {
		return errs.Wrap(errs.KindValidation, err, &errs.ErrorOpts{Message: "question is required"})
	}

	answer, err := this.service.Answer(fctx.Context(), req.Question)
	if err != nil {
		return err
	}

	return fctx.JSON(dtos.AskResponse{Answer: answer})
}

// health godoc
//
//	@Summary	Loaded price table summary
//	@Tags		pricing
//	@Produce	json
//	@Success	200	{object}	dtos.HealthResponse
//	@Router		/health [get]
func (this *PricingHttpHandler) health(fctx fiber.Ctx) error {
	return fctx.JSON(dtos.HealthResponse{
		Status: "ok",
		Rows:   this.table.Len(),
		Modes:  this.table.Modes(),
	})
}
