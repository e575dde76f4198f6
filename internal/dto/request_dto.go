package dto

// PostModelRequest registers an inference engine under a base name. The
// version is assigned server-side.
type PostModelRequest struct {
	BaseModelName string `json:"base_model_name" binding:"required,min=1"`
	ModelName     string `json:"model_name" binding:"required,min=1"`
}

type PostInferenceRequest struct {
	QuestionID  uint     `json:"question_id" binding:"required"`
	ModelID     uint     `json:"model_id" binding:"required"`
	Temperature *float64 `json:"temperature" binding:"omitempty,gt=0,lte=1"`
}

type PostUserGroupRequest struct {
	UserGroupCd   string  `json:"user_group_cd" binding:"required,min=1,max=100"`
	UserGroupDesc *string `json:"user_group_desc"`
}

type PostLevelRequest struct {
	LevelCd   string  `json:"level_cd" binding:"required,min=1,max=100"`
	LevelDesc *string `json:"level_desc"`
}

// SetGroupLevelsRequest replaces the whole grant set of a group.
type SetGroupLevelsRequest struct {
	UserGroupCd string   `json:"user_group_cd" binding:"required,min=1,max=100"`
	LevelCds    []string `json:"level_cds" binding:"required,dive,min=1,max=100"`
}

type AddGroupLevelRequest struct {
	UserGroupCd string `json:"user_group_cd" binding:"required,min=1,max=100"`
	LevelCd     string `json:"level_cd" binding:"required,min=1,max=100"`
}

type SetQuestionLevelRequest struct {
	LevelCd string `json:"level_cd" binding:"required,min=1,max=100"`
}
