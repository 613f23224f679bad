package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
)

var paperExportHeaders = []string{
	"Názov", "Stav", "Autori", "Email", "Univerzita", "Sekcia", "Recenzent", "Komentár recenzenta", "Dátum priradenia",
}

type exportService struct {
	repo   repositories.Repository
	store  storage.FileStore
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, store storage.FileStore, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// ExportConferencePapersExcel builds a workbook with one row per paper of the conference
func (s *exportService) ExportConferencePapersExcel(ctx context.Context, conferenceID uint) ([]byte, string, error) {
	conference, papers, err := s.loadConference(ctx, conferenceID)
	if err != nil {
		return nil, "", err
	}

	ids := make([]uint, 0, len(papers))
	for _, p := range papers {
		ids = append(ids, p.ID)
	}
	assignments, err := s.repo.Assignment().LatestByPapers(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load assignments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("SVK %d", conference.Year)
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	for i, header := range paperExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, paper := range papers {
		row := paperExportRow(paper, assignments[paper.ID])
		for colIndex, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported conference papers", "conference_id", conference.ID, "papers", len(papers))
	return buf.Bytes(), fmt.Sprintf("SVK_%d.xlsx", conference.Year), nil
}

// WriteConferencePapersZip streams every stored paper file of the conference into a zip archive.
// Missing files are skipped.
func (s *exportService) WriteConferencePapersZip(ctx context.Context, conferenceID uint, w io.Writer) (string, error) {
	conference, papers, err := s.loadConference(ctx, conferenceID)
	if err != nil {
		return "", err
	}

	zw := zip.NewWriter(w)
	for _, paper := range papers {
		if paper.FilePath == "" {
			continue
		}
		if err := s.addToZip(ctx, zw, paper); err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				s.logger.Warn("Paper file missing from store", "paper_id", paper.ID, "path", paper.FilePath)
				continue
			}
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish zip archive: %w", err)
	}

	return fmt.Sprintf("SVK_%d_papers.zip", conference.Year), nil
}

func (s *exportService) addToZip(ctx context.Context, zw *zip.Writer, paper *models.Paper) error {
	rc, err := s.store.Open(ctx, paper.FilePath)
	if err != nil {
		return err
	}
	defer rc.Close()

	entry, err := zw.Create(fmt.Sprintf("%d_%s", paper.ID, path.Base(paper.FilePath)))
	if err != nil {
		return fmt.Errorf("failed to add zip entry: %w", err)
	}
	if _, err := io.Copy(entry, rc); err != nil {
		return fmt.Errorf("failed to copy paper %d into archive: %w", paper.ID, err)
	}
	return nil
}

func (s *exportService) loadConference(ctx context.Context, conferenceID uint) (*models.Conference, []*models.Paper, error) {
	conference, err := s.repo.Conference().GetByID(ctx, conferenceID)
	if err != nil {
		return nil, nil, notFoundOr(err, ErrConferenceNotFound)
	}
	papers, err := s.repo.Paper().GetByConferenceWithDetails(ctx, conferenceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load papers: %w", err)
	}
	return conference, papers, nil
}

func paperExportRow(paper *models.Paper, assignment *models.ReviewerAssignment) []any {
	authors := make([]string, 0, len(paper.Authors))
	for _, a := range paper.Authors {
		authors = append(authors, a.FirstName+" "+a.LastName)
	}

	var email, university, category, reviewer, comments, assignedAt string
	if paper.User != nil {
		email = paper.User.Email
		university = paper.User.University
	}
	if paper.Category != nil {
		category = paper.Category.Name
	}
	if paper.Reviewer != nil {
		reviewer = paper.Reviewer.FullName()
	}
	if paper.Review != nil && paper.Review.IsSent() {
		comments = paper.Review.Comments
	}
	if assignment != nil {
		assignedAt = assignment.AssignedAt.Format("2006-01-02")
	}

	return []any{
		paper.Title,
		string(paper.Status),
		strings.Join(authors, ", "),
		email,
		university,
		category,
		reviewer,
		comments,
		assignedAt,
	}
}
