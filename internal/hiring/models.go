// Package hiring owns the recruitment records: uploaded candidate CVs, job
// descriptions, and the CV/JD match results produced for them. Embeddings
// and match scores are caller-provided; this package stores and queries
// them.
package hiring

import "time"

// Candidate is one parsed CV owned by a user.
type Candidate struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	OriginalFilename string     `json:"original_filename"`
	CVText           string     `json:"cv_text"`
	CVSummary        string     `json:"cv_summary,omitempty"`
	ExtractedSkills  []string   `json:"extracted_skills,omitempty"`
	CVEmbedding      []float32  `json:"cv_embedding,omitempty"`
	ExperienceLevel  string     `json:"experience_level,omitempty"`
	FileURL          string     `json:"file_url"`
	FileType         string     `json:"file_type"`
	FileSizeBytes    int64      `json:"file_size_bytes,omitempty"`
	ProcessedAt      time.Time  `json:"processed_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CandidateWithSimilarity is a search hit; the embedding is omitted from
// search results.
type CandidateWithSimilarity struct {
	Candidate
	Similarity float64 `json:"similarity"`
}

// JobDescription is a reusable job posting owned by a user.
type JobDescription struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	Title                string     `json:"title"`
	Company              string     `json:"company,omitempty"`
	Description          string     `json:"description"`
	Requirements         string     `json:"requirements"`
	DescriptionEmbedding []float32  `json:"description_embedding,omitempty"`
	KeySkills            []string   `json:"key_skills,omitempty"`
	ExperienceLevel      string     `json:"experience_level,omitempty"`
	TimesUsed            int        `json:"times_used"`
	LastUsedAt           *time.Time `json:"last_used_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// CandidateStats summarizes a user's candidate pool: pool size, uploads
// since the start of the current month, and CVs whose retention window
// closes within the next week.
type CandidateStats struct {
	TotalCandidates     int `json:"total_candidates"`
	CandidatesThisMonth int `json:"candidates_this_month"`
	ExpiringSoon        int `json:"expiring_soon"`
}

// JobDescriptionWithSimilarity is a search hit.
type JobDescriptionWithSimilarity struct {
	JobDescription
	Similarity float64 `json:"similarity"`
}

// Recommendation is the match verdict.
type Recommendation string

const (
	RecommendationStrongMatch    Recommendation = "strong_match"
	RecommendationPotentialFit   Recommendation = "potential_fit"
	RecommendationNotRecommended Recommendation = "not_recommended"
)

// Valid reports whether r is one of the known verdicts.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationStrongMatch, RecommendationPotentialFit, RecommendationNotRecommended:
		return true
	}
	return false
}

// Match is one CV/JD comparison result.
type Match struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	CandidateID       string         `json:"candidate_id"`
	JobDescriptionID  string         `json:"job_description_id"`
	MatchPercentage   float64        `json:"match_percentage"`
	ConfidenceScore   float64        `json:"confidence_score"`
	ProcessingTimeMS  int            `json:"processing_time_ms"`
	MatchingSkills    []string       `json:"matching_skills,omitempty"`
	MissingSkills     []string       `json:"missing_skills,omitempty"`
	Strengths         []string       `json:"strengths,omitempty"`
	Concerns          []string       `json:"concerns,omitempty"`
	Recommendation    Recommendation `json:"recommendation"`
	AIReasoning       string         `json:"ai_reasoning"`
	UserRating        *int           `json:"user_rating,omitempty"`
	UserFeedback      *string        `json:"user_feedback,omitempty"`
	UserDecision      *string        `json:"user_decision,omitempty"`
	AIProvider        string         `json:"ai_provider,omitempty"`
	ProcessingCostUSD float64        `json:"processing_cost_usd,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Feedback is the reviewer's verdict on a match. Nil fields are left as-is.
type Feedback struct {
	Rating   *int    `json:"user_rating,omitempty"`
	Feedback *string `json:"user_feedback,omitempty"`
	Decision *string `json:"user_decision,omitempty"`
}

// Analytics aggregates a user's match history.
type Analytics struct {
	TotalMatches            int     `json:"total_matches"`
	AverageMatchPercentage  float64 `json:"average_match_percentage"`
	StrongMatches           int     `json:"strong_matches"`
	PotentialFits           int     `json:"potential_fits"`
	NotRecommended          int     `json:"not_recommended"`
	AverageProcessingTimeMS int     `json:"average_processing_time_ms"`
	TotalCostUSD            float64 `json:"total_cost_usd"`
}
