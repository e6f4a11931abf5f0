package memory

import (
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
)

type Memory struct {
	action          *actionRepository
	approvalMessage *approvalMessageRepository
	transition      *transitionRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		action:          newActionRepository(),
		approvalMessage: newApprovalMessageRepository(),
		transition:      newTransitionRepository(),
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) ApprovalMessage() interfaces.ApprovalMessageRepository {
	return m.approvalMessage
}

func (m *Memory) Transition() interfaces.TransitionRepository {
	return m.transition
}

func (m *Memory) Close() error {
	return nil
}
