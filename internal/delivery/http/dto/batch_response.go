package dto

type GenerateBatchResponse struct {
	Message                string `json:"message"`
	UsersProcessed         int    `json:"users_processed"`
	UsersFailed            int    `json:"users_failed"`
	TotalNewMatchesCreated int    `json:"total_new_matches_created"`
}

type AutoApplyBatchResponse struct {
	Message             string `json:"message"`
	MatchesProcessed    int    `json:"matches_processed"`
	ApplicationsCreated int    `json:"applications_created"`
	ApplicationErrors   int    `json:"application_errors"`
	UpdateErrors        int    `json:"update_errors"`
}
