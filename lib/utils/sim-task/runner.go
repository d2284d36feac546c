package simtask

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Step выполняется на каждом шаге задачи, ошибка прерывает выполнение
type Step func(ctx context.Context, step int) error

type Runner struct {
	Steps int
	Delay time.Duration
	Step  Step
}

func NewRunner(steps int, delay time.Duration) Runner {
	if steps < 1 {
		steps = 1
	}
	if delay < 0 {
		delay = 0
	}
	return Runner{
		Steps: steps,
		Delay: delay,
	}
}

// Run имитирует длительную работу: Steps шагов с паузой Delay.
// progress получает значения 0..100, последнее значение 100 только при успешном завершении.
func (r Runner) Run(ctx context.Context, progress func(percent int)) error {
	steps := r.Steps
	if steps < 1 {
		steps = 1
	}
	report := func(percent int) {
		if progress != nil {
			progress(percent)
		}
	}
	report(0)
	for step := 1; step <= steps; step++ {
		if err := sleep(ctx, r.Delay); err != nil {
			return err
		}
		if r.Step != nil {
			if err := r.Step(ctx, step); err != nil {
				return errors.Wrapf(err, "ошибка на шаге %d", step)
			}
		}
		report(step * 100 / steps)
	}
	return nil
}

func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
