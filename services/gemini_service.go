package services

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/cozinha360/pos-backend/models"
	"github.com/cozinha360/pos-backend/utils"
)

// SummaryFallback dikembalikan apa adanya saat pembuatan ringkasan gagal;
// kegagalan tidak pernah diteruskan sebagai error ke pemanggil.
const SummaryFallback = "O resumo inteligente não está disponível no momento."

// SummaryStats adalah agregat penjualan yang dikirim ke model.
type SummaryStats struct {
	SalesTotal    float64 `json:"sales_total"`
	DeliveryCount int     `json:"delivery_count"`
	TableCount    int     `json:"table_count"`
	OrderCount    int     `json:"order_count"`
}

// CollectSummaryStats menghitung agregat dari pesanan yang sudah dibayar.
func CollectSummaryStats(orders []models.Order) SummaryStats {
	var stats SummaryStats
	for _, o := range orders {
		if !o.IsPaid {
			continue
		}
		stats.OrderCount++
		stats.SalesTotal += o.Total
		switch o.Type {
		case models.OrderTypeDelivery:
			stats.DeliveryCount++
		case models.OrderTypeTable:
			stats.TableCount++
		}
	}
	return stats
}

// SummaryService membuat ringkasan penjualan harian lewat Gemini.
type SummaryService struct {
	apiKey string
	model  string
}

func NewSummaryService() *SummaryService {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &SummaryService{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		model:  model,
	}
}

// DailySummary menghasilkan prosa singkat untuk tim dari agregat penjualan.
// Semua kegagalan (tanpa API key, error jaringan, respons kosong) jatuh ke
// SummaryFallback.
func (s *SummaryService) DailySummary(ctx context.Context, stats SummaryStats) string {
	if s.apiKey == "" {
		return SummaryFallback
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		utils.ErrorLogger.Printf("gemini client error: %v", err)
		return SummaryFallback
	}

	prompt := fmt.Sprintf(`Como um consultor especialista em restaurantes, analise os dados de vendas de hoje:
- Total de Vendas: %s
- Pedidos Delivery: %d
- Pedidos em Mesa: %d
- Total de Pedidos: %d

Crie um resumo curto e motivador para a equipe, destacando o desempenho do dia e dando uma dica de melhoria para amanhã.`,
		utils.FormatCurrencyBRL(stats.SalesTotal),
		stats.DeliveryCount,
		stats.TableCount,
		stats.OrderCount,
	)

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		utils.ErrorLogger.Printf("gemini generate error: %v", err)
		return SummaryFallback
	}

	text := resp.Text()
	if text == "" {
		return SummaryFallback
	}
	return text
}
