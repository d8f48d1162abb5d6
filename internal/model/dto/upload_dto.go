package dto

// ImageUploadResponse 图片上传结果
type ImageUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}
