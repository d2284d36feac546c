package apiv1

import (
	"fmt"
	"hr-dashboard-backend/controllers"
	"hr-dashboard-backend/lib/pipeline"
	apimodels "hr-dashboard-backend/models/api"
	"time"

	"github.com/gofiber/fiber/v2"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app fiber.Router) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Get("", controller.board)
		router.Get("stats", controller.stats)
		router.Get("stages", controller.stages)
		router.Get("export", controller.export)
	})
}

// @Summary Доска этапов
// @Tags Воронка
// @Description Кандидаты, сгруппированные по этапам в порядке воронки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   job_id          	query    string  				    	false         "вакансия"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.StageColumn}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline [get]
func (c *pipelineApiController) board(ctx *fiber.Ctx) error {
	resp, err := pipeline.Instance.Board(ctx.Query("job_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доски этапов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статистика по этапам
// @Tags Воронка
// @Description Количество кандидатов на каждом этапе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   job_id          	query    string  				    	false         "вакансия"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.StageStat}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/stats [get]
func (c *pipelineApiController) stats(ctx *fiber.Ctx) error {
	resp, err := pipeline.Instance.Stats(ctx.Query("job_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики по этапам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Этапы
// @Tags Воронка
// @Description Список этапов в порядке воронки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]pipelineapimodels.StageInfo}
// @router /api/v1/space/pipeline/stages [get]
func (c *pipelineApiController) stages(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(pipeline.Instance.Stages()))
}

// @Summary Выгрузить в Excel
// @Tags Воронка
// @Description Выгрузка доски этапов в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   job_id          	query    string  				    	false         "вакансия"
// @Success 200 {file} file
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/pipeline/export [get]
func (c *pipelineApiController) export(ctx *fiber.Ctx) error {
	body, err := pipeline.Instance.ExportXls(ctx.Query("job_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки доски этапов")
	}
	fileName := fmt.Sprintf("pipeline_%s.xlsx", time.Now().Format("2006-01-02"))
	return c.SendXls(ctx, fileName, body.Bytes())
}
