package apiv1

import (
	"hr-dashboard-backend/controllers"
	cvevaluation "hr-dashboard-backend/lib/cv-evaluation"
	apimodels "hr-dashboard-backend/models/api"
	cvevaluationapimodels "hr-dashboard-backend/models/api/cv-evaluation"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type cvApiController struct {
	controllers.BaseAPIController
}

func InitCvApiRouters(app fiber.Router) {
	controller := cvApiController{}
	app.Route("cv", func(router fiber.Router) {
		router.Post("evaluate", controller.evaluate)
		router.Post("bulk-parse", controller.bulkParse)
		router.Route("task/:id", func(taskRoute fiber.Router) {
			taskRoute.Get("", controller.getTask)
			taskRoute.Delete("", controller.cancelTask)
		})
	})
}

// @Summary Оценка резюме
// @Tags Резюме
// @Description Запуск фоновой оценки резюме кандидата относительно вакансии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 cvevaluationapimodels.EvaluateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=cvevaluationapimodels.TaskCreated}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/cv/evaluate [post]
func (c *cvApiController) evaluate(ctx *fiber.Ctx) error {
	var payload cvevaluationapimodels.EvaluateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	taskID, err := cvevaluation.Instance.Evaluate(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запуска оценки резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(cvevaluationapimodels.TaskCreated{TaskID: taskID}))
}

// @Summary Массовый разбор резюме
// @Tags Резюме
// @Description Загрузка файлов резюме и фоновое извлечение данных кандидатов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   files	formData	file	true	"файлы резюме"
// @Param   auto_create	formData	bool	false	"создать кандидатов"
// @Success 200 {object} apimodels.Response{data=cvevaluationapimodels.TaskCreated}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/cv/bulk-parse [post]
func (c *cvApiController) bulkParse(ctx *fiber.Ctx) error {
	files, err := c.readFiles(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	autoCreate, _ := strconv.ParseBool(ctx.FormValue("auto_create"))
	taskID, err := cvevaluation.Instance.BulkParse(files, autoCreate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка запуска разбора резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(cvevaluationapimodels.TaskCreated{TaskID: taskID}))
}

func (c *cvApiController) readFiles(ctx *fiber.Ctx) ([]cvevaluationapimodels.CVFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка чтения multipart формы")
		return nil, errors.New("не удалось получить файлы из запроса")
	}
	result := make([]cvevaluationapimodels.CVFile, 0, len(form.File["files"]))
	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "не удалось открыть файл %s", header.Filename)
		}
		body, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "не удалось прочитать файл %s", header.Filename)
		}
		result = append(result, cvevaluationapimodels.CVFile{Name: header.Filename, Body: body})
	}
	return result, nil
}

// @Summary Состояние задачи
// @Tags Резюме
// @Description Прогресс и результат фоновой задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=cvevaluationapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/cv/task/{id} [get]
func (c *cvApiController) getTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := cvevaluation.Instance.GetTask(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отмена задачи
// @Tags Резюме
// @Description Отмена выполняющейся фоновой задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/cv/task/{id} [delete]
func (c *cvApiController) cancelTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = cvevaluation.Instance.CancelTask(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
