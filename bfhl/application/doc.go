// Package application contém os casos de uso do serviço bfhl: validação das
// variantes da requisição e o despacho para a operação correspondente.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Dispatch(ctx, body) devolve o valor de "data" ou um erro
// classificável pelas funções domain.IsBadRequest / domain.IsUnavailable.
package application
