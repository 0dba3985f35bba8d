package mailer

import (
	"fmt"
	"os"
	"sync"

	"github.com/inklog/internal/db"
	"github.com/rs/zerolog"
)

const queueSize = 64

type message struct {
	subject string
	to      string
	body    string
}

// Notifier 决定评论事件是否需要通知以及通知谁，投递本身异步执行。
// 投递失败只记录日志，绝不影响触发它的评论提交。
type Notifier struct {
	sender   Sender
	baseURL  string
	operator string

	queue chan message
	once  sync.Once
	done  chan struct{}
	log   zerolog.Logger
}

// NewNotifier 创建通知器并启动后台投递协程。
func NewNotifier(sender Sender, baseURL, operatorEmail string) *Notifier {
	n := &Notifier{
		sender:   sender,
		baseURL:  baseURL,
		operator: operatorEmail,
		queue:    make(chan message, queueSize),
		done:     make(chan struct{}),
		log:      zerolog.New(os.Stderr).With().Timestamp().Str("component", "mailer").Logger(),
	}

	go n.run()
	return n
}

// NotifyNewComment 通知博主有新的访客评论待审核。
func (n *Notifier) NotifyNewComment(post *db.Post) {
	if post == nil || n.operator == "" {
		return
	}

	postURL := n.postURL(post.ID)
	body := fmt.Sprintf(
		"<p>New comment on post <i>%s</i>, click the link below to check:</p>"+
			"<p><a href=\"%s\">%s</a></p>"+
			"<p><small style=\"color: #868e96\">Do not reply this email.</small></p>",
		post.Title, postURL, postURL)

	n.enqueue(message{subject: "New comment", to: n.operator, body: body})
}

// NotifyNewReply 通知被回复的评论作者。
func (n *Notifier) NotifyNewReply(post *db.Post, replied *db.Comment) {
	if post == nil || replied == nil || replied.Email == "" {
		return
	}

	postURL := n.postURL(post.ID)
	body := fmt.Sprintf(
		"<p>New reply for the comment you left in post <i>%s</i>, click the link below to check:</p>"+
			"<p><a href=\"%s\">%s</a></p>"+
			"<p><small style=\"color: #868e96\">Do not reply this email.</small></p>",
		post.Title, postURL, postURL)

	n.enqueue(message{subject: "New reply", to: replied.Email, body: body})
}

// Close 停止接收新事件并等待队列中剩余的邮件投递完成。
func (n *Notifier) Close() {
	n.once.Do(func() {
		close(n.queue)
		<-n.done
	})
}

func (n *Notifier) postURL(postID uint) string {
	return fmt.Sprintf("%s/post/%d#comments", n.baseURL, postID)
}

func (n *Notifier) enqueue(msg message) {
	// 队列满时丢弃事件而不是阻塞评论提交
	select {
	case n.queue <- msg:
	default:
		n.log.Warn().Str("to", msg.to).Str("subject", msg.subject).Msg("通知队列已满，邮件被丢弃")
	}
}

func (n *Notifier) run() {
	defer close(n.done)

	for msg := range n.queue {
		if n.sender == nil {
			continue
		}
		if err := n.sender.Send(msg.subject, msg.to, msg.body); err != nil {
			n.log.Error().Err(err).Str("to", msg.to).Str("subject", msg.subject).Msg("邮件发送失败")
		}
	}
}
