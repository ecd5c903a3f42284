package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mtihani/portal/core"
	"github.com/mtihani/portal/core/assistant"
)

type assistantApi struct {
	engine *assistant.Engine
}

// registerAssistantAPI mounts the assistant endpoint. It is deliberately not
// behind the JWT middleware: guests talk to the assistant too, so the token
// is parsed opportunistically and an absent or invalid one means guest.
func registerAssistantAPI(g *echo.Group, engine *assistant.Engine) {
	api := assistantApi{engine: engine}
	g.POST("/assistant/messages", api.interpret)
}

func (api *assistantApi) interpret(ctx echo.Context) error {
	var data AssistantRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssistantRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	role := assistant.RoleGuest
	if claims := getOptionalClaims(ctx); claims != nil {
		role = claims.AssistantRole()
	}

	decision := api.engine.Interpret(data.Text, role, assistant.Page(data.Page))
	return ctx.JSON(http.StatusOK, decision)
}

type AssistantRequest struct {
	Text string `json:"text" validate:"required"`
	Page string `json:"page"`
}

func (ar *AssistantRequest) Validate() error {
	if max := core.Conf.Assistant.MaxQueryLen; len(ar.Text) > max {
		ar.Text = ar.Text[:max]
	}
	return core.Validate.Struct(ar)
}
