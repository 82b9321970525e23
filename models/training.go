package models

// TrainingType is the delivery format of a training module.
type TrainingType string

const (
	TrainingVideo    TrainingType = "Video"
	TrainingDocument TrainingType = "Document"
	TrainingQuiz     TrainingType = "Quiz"
	TrainingMixed    TrainingType = "Mixed"
)

func (t TrainingType) IsValid() bool {
	switch t {
	case TrainingVideo, TrainingDocument, TrainingQuiz, TrainingMixed:
		return true
	}
	return false
}

// TrainingModule is a catalog-level learning resource assignable to workers.
type TrainingModule struct {
	ID                       string       `bson:"id" json:"id"`
	Title                    string       `bson:"title" json:"title"`
	Type                     TrainingType `bson:"type" json:"type"`
	Description              string       `bson:"description" json:"description"`
	ContentURL               string       `bson:"contentUrl,omitempty" json:"contentUrl,omitempty"`
	QuizID                   string       `bson:"quizId,omitempty" json:"quizId,omitempty"`
	EstimatedDurationMinutes int          `bson:"estimatedDurationMinutes" json:"estimatedDurationMinutes"`
}

type NewTrainingModule struct {
	Title                    string       `json:"title" binding:"required"`
	Type                     TrainingType `json:"type" binding:"required"`
	Description              string       `json:"description" binding:"required"`
	ContentURL               string       `json:"contentUrl"`
	QuizID                   string       `json:"quizId"`
	EstimatedDurationMinutes int          `json:"estimatedDurationMinutes" binding:"required,min=1"`
}
