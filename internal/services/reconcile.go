package services

import (
	"sort"
	"strings"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// OppositeRole maps a chat participant to the role of their counterpart.
// Admins do not take part in one-to-one chats.
func OppositeRole(r models.Role) models.Role {
	switch r {
	case models.RoleStudent:
		return models.RoleMentor
	case models.RoleMentor:
		return models.RoleStudent
	default:
		return ""
	}
}

// BuildCounterpartLists reconciles the user's message history with the
// roster. The sent and received fetches are concatenated in that order
// and the first-seen message for each counterpart supplies lastMessage
// and its timestamp. Counterparts with history are sorted by
// lastMessageTime descending; entries without a timestamp sort last and
// ties keep their relative order. Roster entries without any history
// make up the "available" list.
func BuildCounterpartLists(userRole models.Role, userID string, sent, received []models.Message, roster []models.Participant) models.CounterpartLists {
	opposite := OppositeRole(userRole)

	all := make([]models.Message, 0, len(sent)+len(received))
	all = append(all, sent...)
	all = append(all, received...)

	seen := make(map[string]struct{})
	withChats := make([]models.Counterpart, 0)

	for _, msg := range all {
		other, ok := counterpartOf(msg, opposite)
		if !ok {
			continue
		}
		if _, exists := seen[other.ID]; exists {
			continue
		}
		seen[other.ID] = struct{}{}

		withChats = append(withChats, models.Counterpart{
			ID:              other.ID,
			Name:            other.Name,
			AvatarURL:       other.AvatarURL,
			LastMessage:     msg.Content,
			LastMessageTime: msg.SentAt,
			// The counterpart spoke last from our side of the record
			Unread: msg.Sender.ID == other.ID,
		})
	}

	sort.SliceStable(withChats, func(i, j int) bool {
		ti, tj := withChats[i].LastMessageTime, withChats[j].LastMessageTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	available := make([]models.Participant, 0)
	for _, p := range roster {
		if p.ID == userID {
			continue
		}
		if _, exists := seen[p.ID]; exists {
			continue
		}
		available = append(available, p)
	}

	return models.CounterpartLists{WithChats: withChats, Available: available}
}

// counterpartOf picks the participant on the other side of a message.
// Messages whose participants don't include the expected role are skipped
// rather than misattributed.
func counterpartOf(msg models.Message, opposite models.Role) (models.Participant, bool) {
	if opposite == "" {
		return models.Participant{}, false
	}
	if msg.Sender.Role == opposite {
		return msg.Sender, true
	}
	if msg.Recipient.Role == opposite {
		return msg.Recipient, true
	}
	return models.Participant{}, false
}

// FilterCounterparts narrows a counterpart list by a case-insensitive
// substring match on the name. An empty query returns the list as-is.
func FilterCounterparts(list []models.Counterpart, query string) []models.Counterpart {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	filtered := make([]models.Counterpart, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), query) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// FilterRoster narrows a roster by a case-insensitive substring match on
// the name.
func FilterRoster(list []models.Participant, query string) []models.Participant {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	filtered := make([]models.Participant, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// PromoteCounterpart moves a participant from the "available" list to the
// head of the "with chats" list after a first message. Promoting an
// already-promoted counterpart is a no-op, so a double send cannot insert
// a duplicate.
func PromoteCounterpart(lists models.CounterpartLists, p models.Participant, firstMessage models.Message) models.CounterpartLists {
	for _, c := range lists.WithChats {
		if c.ID == p.ID {
			return lists
		}
	}

	promoted := models.Counterpart{
		ID:              p.ID,
		Name:            p.Name,
		AvatarURL:       p.AvatarURL,
		LastMessage:     firstMessage.Content,
		LastMessageTime: firstMessage.SentAt,
	}

	withChats := make([]models.Counterpart, 0, len(lists.WithChats)+1)
	withChats = append(withChats, promoted)
	withChats = append(withChats, lists.WithChats...)

	available := make([]models.Participant, 0, len(lists.Available))
	for _, entry := range lists.Available {
		if entry.ID == p.ID {
			continue
		}
		available = append(available, entry)
	}

	return models.CounterpartLists{WithChats: withChats, Available: available}
}
