package model

// ClassifierModelConfig tunes the intent-classification model. Low token
// budget and zero temperature: the reply is a single category name or a
// "multi-intent:" list.
type ClassifierModelConfig struct {
	Model       string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"30"`
	Temperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0"`
}

// ResponderModelConfig tunes the model that synthesizes handler responses.
type ResponderModelConfig struct {
	Model       string  `envconfig:"RESPONDER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONDER_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONDER_TEMPERATURE" default:"0.4"`
}

// ConversationConfig bounds conversation persistence and the classifier
// context window. MaxContextTurns mirrors the chat surface, which only ever
// replays the 10 most recent turns.
type ConversationConfig struct {
	TTL             string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxContextTurns int    `envconfig:"CONVERSATION_MAX_CONTEXT_TURNS" default:"10"`
}

// ExchangeConfig bounds the network handler's diagnostics/solution exchange.
type ExchangeConfig struct {
	MaxRounds int `envconfig:"NETWORK_EXCHANGE_MAX_ROUNDS" default:"6"`
}

// StoreConfig locates the relational customer store.
type StoreConfig struct {
	Path string `envconfig:"STORE_PATH" default:"telecom.db"`
	Seed bool   `envconfig:"STORE_SEED" default:"false"`
}

// KnowledgeConfig locates the document corpus and the vector index.
type KnowledgeConfig struct {
	DocumentsPath  string `envconfig:"KNOWLEDGE_DOCUMENTS_PATH" default:"documents"`
	PersistPath    string `envconfig:"KNOWLEDGE_PERSIST_PATH"`
	Compress       bool   `envconfig:"KNOWLEDGE_COMPRESS" default:"false"`
	EmbeddingModel string `envconfig:"KNOWLEDGE_EMBEDDING_MODEL" default:"gemini-embedding-001"`
	TopK           int    `envconfig:"KNOWLEDGE_TOP_K" default:"2"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8080"`
}
