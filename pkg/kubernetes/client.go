package kubernetes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the Kubernetes clientset
type Client struct {
	clientset kubernetes.Interface
}

// NewClient creates a new Kubernetes client
func NewClient(clientset kubernetes.Interface) *Client {
	return &Client{
		clientset: clientset,
	}
}

// GetClientset builds a clientset from the in-cluster service account,
// falling back to $KUBECONFIG or ~/.kube/config when running outside a cluster.
func GetClientset() (*kubernetes.Clientset, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := os.Getenv("KUBECONFIG")
		if kubeconfig == "" {
			home, _ := os.UserHomeDir()
			kubeconfig = filepath.Join(home, ".kube", "config")
		}
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to build kubernetes config: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	return clientset, nil
}

// GetConfigMapValue reads one key of a ConfigMap.
// Keys stored under binaryData are returned as well.
// Reference: https://pkg.go.dev/k8s.io/client-go/kubernetes/typed/core/v1#ConfigMapInterface
func (c *Client) GetConfigMapValue(ctx context.Context, namespace, name, key string) ([]byte, error) {
	cm, err := c.clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get configmap %s/%s: %w", namespace, name, err)
	}

	if value, ok := cm.Data[key]; ok {
		return []byte(value), nil
	}
	if value, ok := cm.BinaryData[key]; ok {
		return value, nil
	}
	return nil, fmt.Errorf("configmap %s/%s has no key %q", namespace, name, key)
}
