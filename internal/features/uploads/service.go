package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"eagleflow/internal/config"
	audit_logs "eagleflow/internal/features/audit_logs"
	projects_repositories "eagleflow/internal/features/projects/repositories"
	projects_services "eagleflow/internal/features/projects/services"
	users_models "eagleflow/internal/features/users/models"
	users_repositories "eagleflow/internal/features/users/repositories"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/disk"
)

const (
	maxUploadSizeBytes = 5 * 1024 * 1024 // 5 MB

	// Uploads are rejected when the volume is nearly full
	diskUsageLimitPercent = 95.0

	avatarsSubdir  = "avatars"
	projectsSubdir = "projects"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadService struct {
	profileRepository *users_repositories.ProfileRepository
	projectRepository *projects_repositories.ProjectRepository
	projectService    *projects_services.ProjectService
	auditLogService   *audit_logs.AuditLogService
	logger            *slog.Logger
}

func (s *UploadService) UploadAvatar(
	user *users_models.User,
	fileHeader *multipart.FileHeader,
) (string, error) {
	filePath, publicURL, err := s.storeFile(fileHeader, avatarsSubdir, user.ID)
	if err != nil {
		return "", err
	}

	if err := s.profileRepository.UpdateAvatarURL(user.ID, publicURL); err != nil {
		s.removeStoredFile(filePath)
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}

	s.auditLogService.WriteAuditLog("Avatar uploaded", &user.ID, nil)

	return publicURL, nil
}

func (s *UploadService) UploadProjectImage(
	projectID uuid.UUID,
	user *users_models.User,
	fileHeader *multipart.FileHeader,
) (string, error) {
	canManage, err := s.projectService.CanUserManageProject(projectID, user)
	if err != nil {
		return "", err
	}

	if !canManage {
		return "", errors.New("insufficient permissions to update project image")
	}

	filePath, publicURL, err := s.storeFile(fileHeader, projectsSubdir, projectID)
	if err != nil {
		return "", err
	}

	if err := s.projectRepository.UpdateProjectImageURL(projectID, publicURL); err != nil {
		s.removeStoredFile(filePath)
		return "", fmt.Errorf("failed to update project image: %w", err)
	}

	s.projectService.InvalidateProjectCache(projectID)

	s.auditLogService.WriteAuditLog("Project image uploaded", &user.ID, &projectID)

	return publicURL, nil
}

// OnBeforeProjectDeletion removes the stored project image so deleted
// projects do not leave orphaned files behind.
func (s *UploadService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil
	}

	if project.ImageURL == nil {
		return nil
	}

	filePath, ok := s.filePathFromPublicURL(*project.ImageURL)
	if !ok {
		return nil
	}

	s.removeStoredFile(filePath)

	return nil
}

// storeFile validates and writes the upload, returning the path on disk and
// the public URL it is served under.
func (s *UploadService) storeFile(
	fileHeader *multipart.FileHeader,
	subdir string,
	ownerID uuid.UUID,
) (string, string, error) {
	extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[extension] {
		return "", "", errors.New("unsupported file type, allowed: jpg, jpeg, png, gif, webp")
	}

	if fileHeader.Size > maxUploadSizeBytes {
		return "", "", errors.New("file is too large, maximum size is 5 MB")
	}

	if err := s.checkDiskSpace(); err != nil {
		return "", "", err
	}

	randomSuffix := make([]byte, 8)
	if _, err := rand.Read(randomSuffix); err != nil {
		return "", "", fmt.Errorf("failed to generate file name: %w", err)
	}

	fileName := fmt.Sprintf("%s-%s%s", ownerID, hex.EncodeToString(randomSuffix), extension)
	targetDir := filepath.Join(config.GetEnv().UploadsDir, subdir)

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to prepare uploads directory: %w", err)
	}

	filePath := filepath.Join(targetDir, fileName)

	source, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	defer source.Close()

	target, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	defer target.Close()

	if _, err := io.Copy(target, source); err != nil {
		s.removeStoredFile(filePath)
		return "", "", fmt.Errorf("failed to store uploaded file: %w", err)
	}

	publicURL := fmt.Sprintf("%s/uploads/%s/%s", config.GetEnv().PublicBaseURL, subdir, fileName)

	return filePath, publicURL, nil
}

func (s *UploadService) checkDiskSpace() error {
	usage, err := disk.Usage(config.GetEnv().UploadsDir)
	if err != nil {
		// The directory may not exist yet on first upload
		usage, err = disk.Usage("/")
		if err != nil {
			s.logger.Error("failed to check disk usage", "error", err)
			return nil
		}
	}

	if usage.UsedPercent >= diskUsageLimitPercent {
		return errors.New("uploads are temporarily unavailable, not enough disk space")
	}

	return nil
}

func (s *UploadService) removeStoredFile(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("failed to remove stored file", "error", err, "path", filePath)
	}
}

func (s *UploadService) filePathFromPublicURL(publicURL string) (string, bool) {
	prefix := config.GetEnv().PublicBaseURL + "/uploads/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}

	relative := strings.TrimPrefix(publicURL, prefix)
	if strings.Contains(relative, "..") {
		return "", false
	}

	return filepath.Join(config.GetEnv().UploadsDir, filepath.FromSlash(relative)), true
}
