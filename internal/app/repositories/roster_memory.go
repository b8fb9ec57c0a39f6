package repositories

import (
	"context"
	"sync"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
)

type sectionKey struct {
	branch string
	year   string
}

// MemoryRoster is the in-memory RosterStore. It owns every map and index it
// holds: readers get copies, never references into the maps. A single RWMutex
// serializes mutations; a create-plus-profile pair is one critical section,
// so concurrent readers always observe a consistent student+profile snapshot.
//
// Roll number and section lookups go through incrementally maintained
// indices, keeping reconciliation of an N-row batch O(N).
type MemoryRoster struct {
	mu sync.RWMutex

	students map[int64]models.Student
	profiles map[int64]models.CodingProfile
	order    []int64 // student ids in insertion order

	profileByStudent map[int64]int64  // studentID -> profile id
	idByRoll         map[string]int64 // rollNumber -> student id
	idsBySection     map[sectionKey]map[int64]struct{}

	nextStudentID int64
	nextProfileID int64
}

// NewMemoryRoster creates an empty in-memory roster store.
func NewMemoryRoster() *MemoryRoster {
	return &MemoryRoster{
		students:         make(map[int64]models.Student),
		profiles:         make(map[int64]models.CodingProfile),
		profileByStudent: make(map[int64]int64),
		idByRoll:         make(map[string]int64),
		idsBySection:     make(map[sectionKey]map[int64]struct{}),
		nextStudentID:    1,
		nextProfileID:    1,
	}
}

// GetAll returns every student in insertion order.
func (r *MemoryRoster) GetAll(ctx context.Context) ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyStudent(r.students[id]))
	}
	return out, nil
}

// GetAllWithProfiles returns every student joined with its profile.
func (r *MemoryRoster) GetAllWithProfiles(ctx context.Context) ([]models.StudentWithProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StudentWithProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, models.StudentWithProfile{
			Student: copyStudent(r.students[id]),
			Profile: r.profileCopy(id),
		})
	}
	return out, nil
}

// GetByBranchAndYear returns students matching both fields exactly,
// in insertion order.
func (r *MemoryRoster) GetByBranchAndYear(ctx context.Context, branch, year string) ([]models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.idsBySection[sectionKey{branch: branch, year: year}]
	out := make([]models.Student, 0, len(ids))
	for _, id := range r.order {
		if _, ok := ids[id]; ok {
			out = append(out, copyStudent(r.students[id]))
		}
	}
	return out, nil
}

// GetByRollNumber returns the student with the given roll number.
func (r *MemoryRoster) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByRoll[rollNumber]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	s := copyStudent(r.students[id])
	return &s, nil
}

// GetProfile returns the coding profile for a student id.
func (r *MemoryRoster) GetProfile(ctx context.Context, studentID int64) (*models.CodingProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.profileCopy(studentID)
	if p == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

// GetStudentWithProfile composes the roll-number and profile lookups under a
// single read lock, so the pair is a consistent snapshot.
func (r *MemoryRoster) GetStudentWithProfile(ctx context.Context, rollNumber string) (*models.StudentWithProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByRoll[rollNumber]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	return &models.StudentWithProfile{
		Student: copyStudent(r.students[id]),
		Profile: r.profileCopy(id),
	}, nil
}

// CreateStudent assigns a surrogate id and stores the student.
func (r *MemoryRoster) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created, err := r.createStudentLocked(student)
	if err != nil {
		return nil, err
	}
	s := copyStudent(*created)
	return &s, nil
}

func (r *MemoryRoster) createStudentLocked(student *models.Student) (*models.Student, error) {
	if student.RollNumber == "" {
		return nil, apperrors.ErrValidationFailed
	}
	if _, exists := r.idByRoll[student.RollNumber]; exists {
		return nil, apperrors.ErrRollNumberExists
	}

	s := copyStudent(*student)
	s.ID = r.nextStudentID
	r.nextStudentID++

	r.students[s.ID] = s
	r.order = append(r.order, s.ID)
	r.idByRoll[s.RollNumber] = s.ID
	r.addToSection(s)

	return &s, nil
}

// UpdateStudent merges the non-nil fields of update into the record in place.
func (r *MemoryRoster) UpdateStudent(ctx context.Context, id int64, update models.StudentUpdate) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := r.updateStudentLocked(id, update)
	if err != nil {
		return nil, err
	}
	s := copyStudent(*updated)
	return &s, nil
}

func (r *MemoryRoster) updateStudentLocked(id int64, update models.StudentUpdate) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	// Branch/year moves must keep the section index in step with the record.
	oldSection := sectionKey{branch: s.Branch, year: s.Year}

	if update.Name != nil {
		s.Name = *update.Name
	}
	if update.Branch != nil {
		s.Branch = *update.Branch
	}
	if update.Year != nil {
		s.Year = *update.Year
	}
	if update.ImageURL != nil {
		s.ImageURL = copyStringPtr(update.ImageURL)
	}

	newSection := sectionKey{branch: s.Branch, year: s.Year}
	if newSection != oldSection {
		r.removeFromSection(oldSection, id)
		r.addToSection(s)
	}

	r.students[id] = s
	return &s, nil
}

// ReplaceProfile swaps the student's profile wholesale, keeping the prior
// profile's surrogate id when one exists.
func (r *MemoryRoster) ReplaceProfile(ctx context.Context, studentID int64, metrics models.ProfileMetrics) (*models.CodingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced, err := r.replaceProfileLocked(studentID, metrics)
	if err != nil {
		return nil, err
	}
	p := *replaced
	return &p, nil
}

func (r *MemoryRoster) replaceProfileLocked(studentID int64, metrics models.ProfileMetrics) (*models.CodingProfile, error) {
	if _, ok := r.students[studentID]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	p := metrics.ToProfile(studentID)
	if existingID, ok := r.profileByStudent[studentID]; ok {
		p.ID = existingID
	} else {
		p.ID = r.nextProfileID
		r.nextProfileID++
	}

	r.profiles[p.ID] = *p
	r.profileByStudent[studentID] = p.ID
	return p, nil
}

// DeleteStudent removes a student and, in the same critical section, its
// coding profile. No orphan profiles survive.
func (r *MemoryRoster) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.deleteStudentLocked(id), nil
}

func (r *MemoryRoster) deleteStudentLocked(id int64) bool {
	s, ok := r.students[id]
	if !ok {
		return false
	}

	delete(r.students, id)
	delete(r.idByRoll, s.RollNumber)
	r.removeFromSection(sectionKey{branch: s.Branch, year: s.Year}, id)

	if profileID, ok := r.profileByStudent[id]; ok {
		delete(r.profiles, profileID)
		delete(r.profileByStudent, id)
	}

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return true
}

// DeleteStudentByRollNumber removes the student matching the roll number.
func (r *MemoryRoster) DeleteStudentByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.idByRoll[rollNumber]
	if !ok {
		return false, nil
	}
	return r.deleteStudentLocked(id), nil
}

// DeleteStudentsByBranch removes every student in the branch.
func (r *MemoryRoster) DeleteStudentsByBranch(ctx context.Context, branch string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []int64
	for key, set := range r.idsBySection {
		if key.branch != branch {
			continue
		}
		for id := range set {
			ids = append(ids, id)
		}
	}

	count := 0
	for _, id := range ids {
		if r.deleteStudentLocked(id) {
			count++
		}
	}
	return count, nil
}

// DeleteStudentsBySection removes every student in the (branch, year) section.
func (r *MemoryRoster) DeleteStudentsBySection(ctx context.Context, branch, year string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.idsBySection[sectionKey{branch: branch, year: year}]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	count := 0
	for _, id := range ids {
		if r.deleteStudentLocked(id) {
			count++
		}
	}
	return count, nil
}

// Reconcile upserts a batch of import records in order under one lock, so a
// concurrent reader sees either none or all of a row's student+profile pair
// and two overlapping imports cannot interleave.
func (r *MemoryRoster) Reconcile(ctx context.Context, batch []ImportRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, rec := range batch {
		if rec.RollNumber == "" {
			// Defense in depth; the import service filters these out already.
			continue
		}

		var student *models.Student
		if id, ok := r.idByRoll[rec.RollNumber]; ok {
			updated, err := r.updateStudentLocked(id, models.StudentUpdate{
				Name:     &rec.Name,
				Branch:   &rec.Branch,
				Year:     &rec.Year,
				ImageURL: rec.ImageURL,
			})
			if err != nil {
				return count, err
			}
			student = updated
		} else {
			created, err := r.createStudentLocked(&models.Student{
				RollNumber: rec.RollNumber,
				Name:       rec.Name,
				Branch:     rec.Branch,
				Year:       rec.Year,
				ImageURL:   copyStringPtr(rec.ImageURL),
			})
			if err != nil {
				return count, err
			}
			student = created
		}

		if _, err := r.replaceProfileLocked(student.ID, rec.Metrics); err != nil {
			// The student row was just written, so this only fires on a
			// store bug; surface it rather than leave the pair split.
			logger.Error().Err(err).Str("rollNumber", rec.RollNumber).Msg("Profile replace failed mid-reconcile")
			return count, err
		}

		count++
	}

	return count, nil
}

// profileCopy returns a copy of the student's profile, or nil. Caller must
// hold at least a read lock.
func (r *MemoryRoster) profileCopy(studentID int64) *models.CodingProfile {
	profileID, ok := r.profileByStudent[studentID]
	if !ok {
		return nil
	}
	p := r.profiles[profileID]
	return &p
}

func (r *MemoryRoster) addToSection(s models.Student) {
	key := sectionKey{branch: s.Branch, year: s.Year}
	set, ok := r.idsBySection[key]
	if !ok {
		set = make(map[int64]struct{})
		r.idsBySection[key] = set
	}
	set[s.ID] = struct{}{}
}

func (r *MemoryRoster) removeFromSection(key sectionKey, id int64) {
	if set, ok := r.idsBySection[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(r.idsBySection, key)
		}
	}
}

func copyStudent(s models.Student) models.Student {
	s.ImageURL = copyStringPtr(s.ImageURL)
	return s
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
