// Package domain define contratos e tipos de domínio do serviço bfhl.
//
// Este pacote não depende de net/http nem de implementações concretas:
// operações (tagged union), envelope de resposta, taxonomia de erros,
// utilitários numéricos puros e as interfaces que a camada infra implementa
// (Answerer, StatsStore, SlotPool).
package domain
