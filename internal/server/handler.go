package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/medibill/internal/pricing"
	"github.com/gyeh/medibill/internal/protocol"
	"github.com/gyeh/medibill/internal/store"
)

// handle processes exactly one billing request on conn and closes it. Every
// exit path releases the connection and, where a client is waiting, sends a
// terminated response so its read loop does not hang.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()

	start := time.Now()
	s.metrics.ConnectionsAccepted.Inc()
	s.metrics.ActiveConnections.Inc()
	defer func() {
		s.metrics.ActiveConnections.Dec()
		s.metrics.HandlerDuration.Observe(time.Since(start).Seconds())
	}()

	log := s.log.With().
		Str("conn_id", uuid.NewString()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()

	defer conn.Close()
	defer func() {
		// Isolation is a hard requirement: a panicking handler must not
		// take the process (and every other connection) with it.
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("handler panicked")
		}
	}()

	log.Info().Msg("client connected")

	w := bufio.NewWriter(conn)
	defer w.Flush()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			log.Debug().Msg("client closed without sending a request")
		} else {
			log.Warn().Err(err).Msg("read request failed")
		}
		return
	}

	req, err := protocol.ParseRequest(line)
	if err != nil {
		s.metrics.MalformedRequests.Inc()
		log.Warn().Err(err).Str("line", strings.TrimSpace(line)).Msg("rejecting malformed request")
		var merr *protocol.MalformedRequestError
		reason := "malformed request"
		if errors.As(err, &merr) {
			reason = merr.Error()
		}
		if werr := protocol.WriteMalformed(w, reason); werr != nil {
			log.Debug().Err(werr).Msg("write error response failed")
		}
		return
	}

	log.Info().
		Int("patient_id", req.PatientID).
		Str("visit_date", req.VisitDate).
		Str("patient_type", req.PatientType).
		Str("service_code", req.ServiceCode).
		Msg("request received")

	plan, err := s.gateway.LookupInsurancePlan(ctx, req.PatientID)
	switch {
	case errors.Is(err, store.ErrPatientNotFound):
		s.metrics.PatientsNotFound.Inc()
		log.Info().Int("patient_id", req.PatientID).Msg("patient not found")
		if werr := protocol.WriteNotFound(w); werr != nil {
			log.Debug().Err(werr).Msg("write not-found response failed")
		}
		return
	case err != nil:
		s.metrics.StoreReadFailures.Inc()
		log.Error().Err(err).Int("patient_id", req.PatientID).Msg("insurance plan lookup failed")
		if werr := protocol.WriteServerError(w); werr != nil {
			log.Debug().Err(werr).Msg("write server error response failed")
		}
		return
	}

	log.Debug().Str("plan", plan).Msg("insurance plan resolved")

	comp, err := pricing.Compute(req.ServiceCode, plan, req.PatientType, s.tables)
	if err != nil {
		// Unreachable after request validation unless the store holds a plan
		// outside the closed enumeration. Treated like a malformed request.
		s.metrics.MalformedRequests.Inc()
		log.Error().Err(err).Msg("bill computation rejected input")
		if werr := protocol.WriteMalformed(w, err.Error()); werr != nil {
			log.Debug().Err(werr).Msg("write error response failed")
		}
		return
	}

	billID, err := s.gateway.RecordBill(ctx, req.PatientID, req.VisitDate, comp.FinalAmount)
	if err != nil {
		// Persistence failure does not block the already-computed bill; the
		// client still gets its statement. See DESIGN.md.
		s.metrics.StoreWriteFailures.Inc()
		log.Error().Err(err).Int("patient_id", req.PatientID).Msg("bill record not persisted")
	} else {
		log.Info().Int64("bill_id", billID).Msg("bill record persisted")
	}

	if werr := protocol.WriteStatement(w, req, plan, comp); werr != nil {
		log.Warn().Err(werr).Msg("write statement failed")
		return
	}
	s.metrics.BillsComputed.Inc()
	log.Info().Float64("final_amount", comp.FinalAmount).Msg("bill sent to client")
}
