package application

import (
	"context"
	"encoding/json"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "bfhl-service/bfhl/application"

// Service concentra a regra de despacho do POST /bfhl.
//
// Ele não sabe nada sobre HTTP (headers/status): devolve o valor de "data"
// ou um erro. Answerer nil faz a operação AI falhar com ErrUpstreamUnavailable.
type Service struct {
	Answerer domain.Answerer
	Log      *zap.SugaredLogger
	Tracer   trace.Tracer
}

// Result carrega a operação selecionada mesmo em caso de erro de validação,
// para métricas e estatísticas. Op fica vazio quando a variante não pôde ser
// selecionada.
type Result struct {
	Op   domain.Operation
	Data any
}

// Dispatch valida a variante e executa a operação. Panics durante o cálculo
// viram ErrServerFault; nunca há resultado parcial.
func (s Service) Dispatch(ctx context.Context, body map[string]json.RawMessage) (res Result, err error) {
	req, err := domain.DecodeRequest(body)
	if err != nil {
		s.log().Debugw("request rejected", "error", err)
		return Result{}, err
	}
	res.Op = req.Op

	ctx, span := s.tracer().Start(ctx, "bfhl.dispatch",
		trace.WithAttributes(attribute.String("bfhl.operation", req.Op.String())))
	defer func() {
		if r := recover(); r != nil {
			err = errors.WithStack(errors.Wrapf(domain.ErrServerFault, "panic in operation %s: %v", req.Op, r))
			res.Data = nil
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "dispatch failed")
		}
		span.End()
	}()

	res.Data, err = s.compute(ctx, req)
	if err != nil {
		res.Data = nil
		if domain.IsBadRequest(err) {
			s.log().Debugw("validation failed", "operation", req.Op, "error", err)
		}
		return res, err
	}
	return res, nil
}

func (s Service) compute(ctx context.Context, req domain.Request) (any, error) {
	switch req.Op {
	case domain.OpFibonacci:
		in, err := ValidateFibonacciInput(req.Value)
		if err != nil {
			return nil, err
		}
		return domain.Fibonacci(int(in.N)), nil

	case domain.OpPrime:
		values, err := ValidateIntegerArray(req.Value, 0)
		if err != nil {
			return nil, err
		}
		return domain.FilterPrimes(values), nil

	case domain.OpLCM:
		values, err := ValidateIntegerArray(req.Value, 1)
		if err != nil {
			return nil, err
		}
		return domain.FoldLCM(values), nil

	case domain.OpHCF:
		values, err := ValidateIntegerArray(req.Value, 1)
		if err != nil {
			return nil, err
		}
		return domain.FoldGCD(values), nil

	case domain.OpAI:
		in, err := ValidateQuestion(req.Value)
		if err != nil {
			return nil, err
		}
		if s.Answerer == nil {
			return nil, errors.WithDetail(domain.ErrUpstreamUnavailable, "no answerer configured")
		}
		answer, err := s.Answerer.Answer(ctx, in.Question)
		if err != nil {
			return nil, errors.Wrap(err, "answer question")
		}
		return answer, nil
	}

	return nil, errors.WithDetailf(domain.ErrUnknownOperation, "operation %q", req.Op)
}

func (s Service) log() *zap.SugaredLogger {
	if s.Log == nil {
		return zap.NewNop().Sugar()
	}
	return s.Log
}

func (s Service) tracer() trace.Tracer {
	if s.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return s.Tracer
}
