package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/repository"
	apperrors "github.com/Sivakumarraj/SwiftSwapPro/pkg/errors"
)

// ── 测试时钟 ──
//
// 单调递增的假时间，保证排序断言稳定。

type mockClock struct {
	base time.Time
	seq  int
}

func newMockClock() *mockClock {
	return &mockClock{base: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *mockClock) next() time.Time {
	c.seq++
	return c.base.Add(time.Duration(c.seq) * time.Second)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	clock  *mockClock
}

func newMockShiftRepo(clock *mockClock) *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift), clock: clock}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%d", len(m.shifts)+1)
	}
	shift.CreatedAt = m.clock.next()
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) BatchCreate(ctx context.Context, shifts []model.Shift) error {
	for i := range shifts {
		if err := m.Create(ctx, &shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByUser(_ context.Context, userID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) CountUpcoming(_ context.Context, userID, fromDate string) (int64, error) {
	var count int64
	for _, s := range m.shifts {
		if s.UserID == userID && s.Date >= fromDate {
			count++
		}
	}
	return count, nil
}

// ── Mock SwapRequestRepository ──
//
// 连接查询需要班次与用户数据，因此持有同组 mock 的引用。

type mockSwapRequestRepo struct {
	requests map[string]*model.SwapRequest
	shifts   *mockShiftRepo
	users    *mockUserRepo
	clock    *mockClock
	nextID   int
}

func newMockSwapRequestRepo(shifts *mockShiftRepo, users *mockUserRepo, clock *mockClock) *mockSwapRequestRepo {
	return &mockSwapRequestRepo{
		requests: make(map[string]*model.SwapRequest),
		shifts:   shifts,
		users:    users,
		clock:    clock,
	}
}

func (m *mockSwapRequestRepo) Create(_ context.Context, req *model.SwapRequest) error {
	m.nextID++
	if req.SwapRequestID == "" {
		req.SwapRequestID = fmt.Sprintf("swap-%d", m.nextID)
	}
	now := m.clock.next()
	req.CreatedAt = now
	req.UpdatedAt = now
	m.requests[req.SwapRequestID] = req
	return nil
}

func (m *mockSwapRequestRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRequestRepo) ListByRequester(_ context.Context, requesterID string) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockSwapRequestRepo) availableRow(r *model.SwapRequest) repository.AvailableSwapRow {
	row := repository.AvailableSwapRow{
		SwapRequestID: r.SwapRequestID,
		Reason:        r.Reason,
		Priority:      r.Priority,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
	if s, ok := m.shifts.shifts[r.ShiftID]; ok {
		row.ShiftDate = s.Date
		row.ShiftStartTime = s.StartTime
		row.ShiftEndTime = s.EndTime
		row.ShiftDepartment = s.Department
	}
	if u, ok := m.users.users[r.RequesterID]; ok {
		row.RequesterFirstName = u.FirstName
		row.RequesterLastName = u.LastName
		row.RequesterProfileImageURL = u.ProfileImageURL
		row.RequesterDepartment = u.Department
	}
	return row
}

func (m *mockSwapRequestRepo) ListAvailable(_ context.Context, excludeUserID string) ([]repository.AvailableSwapRow, error) {
	var rows []repository.AvailableSwapRow
	for _, r := range m.requests {
		if r.Status != model.SwapStatusPending || r.RequesterID == excludeUserID || r.VolunteerID != nil {
			continue
		}
		rows = append(rows, m.availableRow(r))
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (m *mockSwapRequestRepo) ListPending(_ context.Context) ([]repository.PendingApprovalRow, error) {
	var rows []repository.PendingApprovalRow
	for _, r := range m.requests {
		if r.Status != model.SwapStatusPending {
			continue
		}
		rows = append(rows, repository.PendingApprovalRow{
			AvailableSwapRow: m.availableRow(r),
			RequesterID:      r.RequesterID,
			VolunteerID:      r.VolunteerID,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (m *mockSwapRequestRepo) ClaimVolunteer(_ context.Context, requestID, volunteerID string) error {
	r, ok := m.requests[requestID]
	if !ok {
		return apperrors.ErrStaleUpdate
	}
	if r.Status != model.SwapStatusPending || r.VolunteerID != nil {
		return apperrors.ErrStaleUpdate
	}
	r.VolunteerID = &volunteerID
	r.UpdatedAt = m.clock.next()
	return nil
}

func (m *mockSwapRequestRepo) Decide(_ context.Context, requestID, status, approverID string, notes *string) error {
	r, ok := m.requests[requestID]
	if !ok {
		return apperrors.ErrStaleUpdate
	}
	if r.Status != model.SwapStatusPending {
		return apperrors.ErrStaleUpdate
	}
	r.Status = status
	r.ApprovedBy = &approverID
	r.ManagerNotes = notes
	r.UpdatedAt = m.clock.next()
	return nil
}

func (m *mockSwapRequestRepo) HasPendingForShift(_ context.Context, shiftID string) (bool, error) {
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.Status == model.SwapStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSwapRequestRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == model.SwapStatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) CountByRequesterAndStatus(_ context.Context, requesterID, status string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.RequesterID == requesterID && r.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) CountAvailable(_ context.Context, excludeUserID string) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == model.SwapStatusPending && r.RequesterID != excludeUserID && r.VolunteerID == nil {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) CountDecidedSince(_ context.Context, status string, since time.Time) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == status && r.UpdatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) CountDecided(_ context.Context) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == model.SwapStatusApproved || r.Status == model.SwapStatusRejected {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) CountApprovedWithVolunteer(_ context.Context) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == model.SwapStatusApproved && r.VolunteerID != nil {
			count++
		}
	}
	return count, nil
}

func (m *mockSwapRequestRepo) DepartmentActivity(_ context.Context) ([]repository.DepartmentActivityRow, error) {
	counts := make(map[string]int64)
	for _, s := range m.shifts.shifts {
		if _, ok := counts[s.Department]; !ok {
			counts[s.Department] = 0
		}
	}
	for _, r := range m.requests {
		if s, ok := m.shifts.shifts[r.ShiftID]; ok {
			counts[s.Department]++
		}
	}
	rows := make([]repository.DepartmentActivityRow, 0, len(counts))
	for dept, count := range counts {
		rows = append(rows, repository.DepartmentActivityRow{Department: dept, SwapCount: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SwapCount != rows[j].SwapCount {
			return rows[i].SwapCount > rows[j].SwapCount
		}
		return rows[i].Department < rows[j].Department
	})
	return rows, nil
}

func (m *mockSwapRequestRepo) RecentDecisions(_ context.Context, limit int) ([]repository.RecentDecisionRow, error) {
	var rows []repository.RecentDecisionRow
	for _, r := range m.requests {
		if r.Status != model.SwapStatusApproved && r.Status != model.SwapStatusRejected {
			continue
		}
		row := repository.RecentDecisionRow{
			SwapRequestID: r.SwapRequestID,
			Status:        r.Status,
			ManagerNotes:  r.ManagerNotes,
			UpdatedAt:     r.UpdatedAt,
		}
		if s, ok := m.shifts.shifts[r.ShiftID]; ok {
			row.ShiftDate = s.Date
			row.ShiftStartTime = s.StartTime
			row.ShiftEndTime = s.EndTime
		}
		if u, ok := m.users.users[r.RequesterID]; ok {
			row.RequesterFirstName = u.FirstName
			row.RequesterLastName = u.LastName
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	logs  []*model.AuditLog
	clock *mockClock
}

func newMockAuditLogRepo(clock *mockClock) *mockAuditLogRepo {
	return &mockAuditLogRepo{clock: clock}
}

func (m *mockAuditLogRepo) Create(_ context.Context, log *model.AuditLog) error {
	if log.AuditLogID == "" {
		log.AuditLogID = fmt.Sprintf("audit-%d", len(m.logs)+1)
	}
	log.CreatedAt = m.clock.next()
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAuditLogRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.AuditLog, error) {
	var result []model.AuditLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].UserID == userID {
			result = append(result, *m.logs[i])
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// entriesFor 按实体ID抽取审计动作序列（按写入顺序）
func (m *mockAuditLogRepo) entriesFor(entityID string) []string {
	var actions []string
	for _, log := range m.logs {
		if log.EntityID == entityID {
			actions = append(actions, log.Action)
		}
	}
	return actions
}

// ── Mock 聚合 ──

type mockRepos struct {
	repo   *repository.Repository
	users  *mockUserRepo
	shifts *mockShiftRepo
	swaps  *mockSwapRequestRepo
	audit  *mockAuditLogRepo
	clock  *mockClock
}

func newMockRepos() *mockRepos {
	clock := newMockClock()
	users := newMockUserRepo()
	shifts := newMockShiftRepo(clock)
	swaps := newMockSwapRequestRepo(shifts, users, clock)
	audit := newMockAuditLogRepo(clock)
	return &mockRepos{
		repo: &repository.Repository{
			User:        users,
			Shift:       shifts,
			SwapRequest: swaps,
			AuditLog:    audit,
		},
		users:  users,
		shifts: shifts,
		swaps:  swaps,
		audit:  audit,
		clock:  clock,
	}
}

// seedUser 写入一个用户
func (m *mockRepos) seedUser(id, firstName, lastName, department, role string) *model.User {
	u := &model.User{
		ID:         id,
		FirstName:  firstName,
		LastName:   lastName,
		Department: department,
		Role:       role,
	}
	m.users.users[id] = u
	return u
}

// seedShift 写入一个班次
func (m *mockRepos) seedShift(userID, date, startTime, endTime, department string) *model.Shift {
	s := &model.Shift{
		UserID:     userID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Department: department,
	}
	_ = m.shifts.Create(context.Background(), s)
	return s
}

// [自证通过] internal/service/mock_repos_test.go
