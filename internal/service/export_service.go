package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"skillswap/backend/internal/repository"
)

var ErrUnknownReportType = errors.New("不支持的报表类型")

// ReportFile 报表导出结果
type ReportFile struct {
	Filename    string
	ContentType string
	Content     *bytes.Buffer
}

// ExportService 报表导出业务接口
type ExportService interface {
	// Report reportType 取 users | swaps | feedback，format 取 csv | xlsx
	Report(ctx context.Context, reportType, format string) (*ReportFile, error)
}

// exportService ExportService 实现
type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建报表导出服务
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Report(ctx context.Context, reportType, format string) (*ReportFile, error) {
	if reportType == "" {
		reportType = "users"
	}
	if format == "" {
		format = "csv"
	}

	var (
		rows [][]string
		err  error
	)
	switch reportType {
	case "users":
		rows, err = s.userRows(ctx)
	case "swaps":
		rows, err = s.swapRows(ctx)
	case "feedback":
		rows, err = s.feedbackRows(ctx)
	default:
		return nil, ErrUnknownReportType
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_report_%s.%s",
		reportType, time.Now().Format("20060102_150405"), format)

	var file *ReportFile
	switch format {
	case "xlsx":
		file, err = renderXLSX(filename, rows)
	default:
		file, err = renderCSV(filename, rows)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("报表已导出",
		zap.String("type", reportType),
		zap.String("filename", filename),
		zap.Int("rows", len(rows)-1),
	)

	return file, nil
}

func (s *exportService) userRows(ctx context.Context) ([][]string, error) {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"ID", "姓名", "邮箱", "所在地", "评分", "是否公开", "状态", "注册时间"}}
	for i := range users {
		u := &users[i]
		status := "正常"
		if !u.IsActive {
			status = "已封禁"
		}
		visible := "否"
		if u.IsPublic {
			visible = "是"
		}
		rows = append(rows, []string{
			u.UserID,
			u.Name,
			u.Email,
			u.Location,
			strconv.FormatFloat(u.Rating, 'f', 2, 64),
			visible,
			status,
			formatTime(u.CreatedAt),
		})
	}
	return rows, nil
}

func (s *exportService) swapRows(ctx context.Context) ([][]string, error) {
	swaps, err := s.repo.Swap.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"ID", "发起方", "接收方", "状态", "留言", "创建时间", "更新时间"}}
	for i := range swaps {
		sw := &swaps[i]
		fromName, toName := sw.FromUserID, sw.ToUserID
		if sw.FromUser != nil {
			fromName = sw.FromUser.Name
		}
		if sw.ToUser != nil {
			toName = sw.ToUser.Name
		}
		rows = append(rows, []string{
			sw.SwapRequestID,
			fromName,
			toName,
			sw.Status,
			sw.Message,
			formatTime(sw.CreatedAt),
			formatTime(sw.UpdatedAt),
		})
	}
	return rows, nil
}

func (s *exportService) feedbackRows(ctx context.Context) ([][]string, error) {
	ratings, err := s.repo.Rating.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := [][]string{{"ID", "申请ID", "评分人", "被评人", "分数", "评语", "评价时间"}}
	for i := range ratings {
		r := &ratings[i]
		raterName, ratedName := r.RaterID, r.RatedUserID
		if r.Rater != nil {
			raterName = r.Rater.Name
		}
		if r.RatedUser != nil {
			ratedName = r.RatedUser.Name
		}
		rows = append(rows, []string{
			r.RatingID,
			r.SwapRequestID,
			raterName,
			ratedName,
			strconv.Itoa(r.Score),
			r.Comment,
			formatTime(r.CreatedAt),
		})
	}
	return rows, nil
}

// renderCSV 输出 CSV；带 UTF-8 BOM，避免 Excel 打开中文乱码
func renderCSV(filename string, rows [][]string) (*ReportFile, error) {
	buf := &bytes.Buffer{}
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &ReportFile{
		Filename:    filename,
		ContentType: "text/csv; charset=utf-8",
		Content:     buf,
	}, nil
}

func renderXLSX(filename string, rows [][]string) (*ReportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &ReportFile{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf,
	}, nil
}
