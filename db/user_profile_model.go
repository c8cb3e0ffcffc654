package db

// Rolling per-user digest used to personalize retrieval and generation.
// At most one document per user; absence is a valid state.
type UserProfileModel struct {
	UserID    string   `bson:"_id"`
	Summary   string   `bson:"summary"`
	KeyTopics []string `bson:"keyTopics"`
	UpdatedOn int64    `bson:"updatedOn"`
}

func (m UserProfileModel) Id() string { return m.UserID }

func (m UserProfileModel) CollectionName() string { return "user_profiles" }
