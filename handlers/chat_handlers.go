package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"demandai/config"
	"demandai/models"
	"demandai/store"
)

const chatModel = "gemini-2.0-flash"

const chatSystemPrompt = "You are an expert Supply Chain Analyst for the 'DemandAI' dashboard. " +
	"Your behavior should be conversational and helpful.\n" +
	"RULES:\n" +
	"1. If the user sends a greeting (e.g., 'hi', 'hello'), respond politely offering help, but DO NOT analyze the data yet.\n" +
	"2. If the user asks a question about the data, use the [SALES DATA CONTEXT] to provide specific, numbers-driven insights.\n" +
	"3. If the user asks a general question, provide professional supply chain advice.\n" +
	"Keep answers concise."

// HandleChat forwards a user message (plus optional serialized sales context)
// to the Gemini API and returns the generated answer.
// POST /api/v1/chat
func HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	apiKey := config.AppConfig.GeminiAPIKey
	if apiKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "Chatbot service unavailable. Missing GEMINI_API_KEY."})
	}

	ctx := c.Context()

	// Clients may send their own serialized context; otherwise summarize the
	// most recent stored records.
	dataContext := req.Context
	if dataContext == "" {
		recent, err := store.FetchRecent(ctx, 100)
		if err != nil {
			log.Printf("Error fetching recent records for chat context: %v", err)
		} else if len(recent) > 0 {
			if serialized, err := json.Marshal(recent); err == nil {
				dataContext = string(serialized)
			}
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to initialize Gemini client"})
	}
	defer client.Close()

	prompt := fmt.Sprintf("%s\n\n[SALES DATA CONTEXT]:\n%s\n\n[USER QUESTION]:\n%s",
		chatSystemPrompt, dataContext, req.Message)

	model := client.GenerativeModel(chatModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate response"})
	}

	text := extractText(resp)
	if text == "" {
		log.Printf("Gemini returned no text content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to parse AI response."})
	}

	return c.JSON(models.ChatResponse{Response: text})
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	return text
}
