package pos

import (
	"context"
	"sync"
	"time"

	"tablecrm_cashier/internal/tablecrm"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minSearchPhoneLen = 10
	searchFallbackCap = 5
)

type Outcome int

const (
	// OutcomeConfirmed means the remote API accepted the document.
	OutcomeConfirmed Outcome = iota
	// OutcomeSimulated means the API was unreachable and the
	// confirmation is local only. Callers must label it as such.
	OutcomeSimulated
)

type Confirmation struct {
	Outcome   Outcome
	Posted    bool
	Total     float64
	Reference string
}

// Service holds the whole authenticated cashier state: derived
// reference lists, customer search results and the in-progress draft.
// One mutex serializes the single logical writer against in-flight
// fetches.
type Service struct {
	session *Session
	logger  *zap.Logger
	now     func() time.Time
	newRef  func() string

	mu         sync.Mutex
	generation uint64
	refs       ReferenceData
	candidates []Customer
	draft      *Draft
}

func NewService(session *Session, logger *zap.Logger) *Service {
	return &Service{
		session: session,
		logger:  logger.Named("pos"),
		now:     time.Now,
		newRef:  uuid.NewString,
		draft:   NewDraft(),
	}
}

func (s *Service) Session() *Session {
	return s.session
}

// Refresh re-derives all reference lists from the sales history. A
// fetch failure clears everything and the UI stays usable with empty
// selectors. The generation counter discards a stale fetch that
// resolves after a newer one started.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	client := s.session.Client()
	s.mu.Unlock()

	docs, err := client.ListSalesDocuments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("stale reference fetch discarded", zap.Uint64("generation", gen))
		return
	}
	if err != nil {
		s.logger.Warn("loading sales history failed", zap.Error(err))
		s.refs = ReferenceData{}
		s.candidates = nil
		return
	}

	s.refs = DeriveReferenceData(docs)
	s.candidates = s.refs.CustomerCandidates()
	s.logger.Info("reference data derived",
		zap.Int("documents", len(docs)),
		zap.Int("organizations", len(s.refs.Organizations)),
		zap.Int("warehouses", len(s.refs.Warehouses)),
		zap.Int("customers", len(s.refs.Customers)),
		zap.Int("price_types", len(s.refs.PriceTypes)),
		zap.Int("catalog_items", len(s.refs.CatalogItems)),
	)
}

// SearchCustomers looks a phone prefix up on the search endpoint. A
// phone shorter than ten characters performs no call at all and leaves
// prior results as they were. On failure it falls back to the sales
// history, stamping the searched phone on every candidate.
func (s *Service) SearchCustomers(ctx context.Context, phone string) {
	if len(phone) < minSearchPhoneLen {
		return
	}

	client := s.session.Client()
	found, err := client.SearchContragents(ctx, phone)
	if err == nil {
		s.mu.Lock()
		s.candidates = customersFromContragents(found)
		s.mu.Unlock()
		return
	}
	s.logger.Warn("contragent search unavailable, deriving from sales history", zap.Error(err))

	docs, derr := client.ListSalesDocuments(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if derr != nil {
		s.logger.Warn("fallback sales fetch failed", zap.Error(derr))
		s.candidates = nil
		return
	}

	fallback := make([]Customer, 0, searchFallbackCap)
	for _, doc := range docs {
		if doc.Contragent == 0 || doc.ContragentName == "" {
			continue
		}
		fallback = append(fallback, Customer{
			ID:    doc.Contragent,
			Name:  doc.ContragentName,
			Phone: phone,
		})
		if len(fallback) >= searchFallbackCap {
			break
		}
	}
	s.candidates = fallback
}

// Submit serializes the draft and posts it. The operator flow never
// sees a hard failure: an unreachable API yields a simulated
// confirmation with a local reference, and the draft resets either way.
func (s *Service) Submit(ctx context.Context, posted bool) Confirmation {
	s.mu.Lock()
	payload := BuildPayload(s.draft, posted, s.now())
	total := s.draft.Total()
	client := s.session.Client()
	s.mu.Unlock()

	conf := Confirmation{Outcome: OutcomeConfirmed, Posted: posted, Total: total}
	if err := client.CreateSalesDocument(ctx, payload); err != nil {
		s.logger.Warn("order submission failed, reporting simulated confirmation",
			zap.Error(err),
			zap.Any("payload", payload),
		)
		conf.Outcome = OutcomeSimulated
		conf.Reference = s.newRef()
	} else {
		s.logger.Info("order submitted",
			zap.Bool("posted", posted),
			zap.Float64("total", total),
			zap.Int("lines", len(payload.Goods)),
		)
	}

	s.mu.Lock()
	s.draft.Reset()
	s.mu.Unlock()
	return conf
}

func (s *Service) References() ReferenceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

func (s *Service) Candidates() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Customer, len(s.candidates))
	copy(out, s.candidates)
	return out
}

func (s *Service) SetCustomer(id string)     { s.setDraftField(func(d *Draft) { d.Customer = id }) }
func (s *Service) SetOrganization(id string) { s.setDraftField(func(d *Draft) { d.Organization = id }) }
func (s *Service) SetWarehouse(id string)    { s.setDraftField(func(d *Draft) { d.Warehouse = id }) }
func (s *Service) SetPaybox(id string)       { s.setDraftField(func(d *Draft) { d.Paybox = id }) }
func (s *Service) SetPriceType(id string)    { s.setDraftField(func(d *Draft) { d.PriceType = id }) }

func (s *Service) AddLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.AddLine()
}

func (s *Service) UpdateLine(index int, field LineField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.UpdateLine(index, field, value, s.refs.CatalogItems)
}

func (s *Service) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.RemoveLine(index)
}

func (s *Service) Lines() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.draft.Lines))
	copy(out, s.draft.Lines)
	return out
}

func (s *Service) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *s.draft
	d.Lines = make([]LineItem, len(s.draft.Lines))
	copy(d.Lines, s.draft.Lines)
	return d
}

func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Total()
}

func (s *Service) setDraftField(set func(*Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.draft)
}

func customersFromContragents(found []tablecrm.Contragent) []Customer {
	out := make([]Customer, 0, len(found))
	for _, c := range found {
		out = append(out, Customer{ID: c.ID, Name: c.Name, Phone: c.Phone})
	}
	return out
}
